package mocks

import (
	"github.com/phrazzld/custom-cars-api/internal/service"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

var (
	_ service.CatalogService       = (*MockCatalogService)(nil)
	_ service.ConfigurationService = (*MockConfigurationService)(nil)
	_ store.CatalogStore           = (*MockCatalogStore)(nil)
	_ store.ConfigurationStore     = (*TestifyMockConfigurationStore)(nil)
)
