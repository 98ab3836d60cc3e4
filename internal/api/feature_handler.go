package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/custom-cars-api/internal/api/shared"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/service"
)

// FeatureHandler serves the feature catalog.
type FeatureHandler struct {
	catalogs service.CatalogService
	logger   *slog.Logger
}

// NewFeatureHandler creates a FeatureHandler.
func NewFeatureHandler(catalogs service.CatalogService, logger *slog.Logger) *FeatureHandler {
	if catalogs == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalogs cannot be nil for FeatureHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FeatureHandler")
	}

	return &FeatureHandler{
		catalogs: catalogs,
		logger:   logger.With(slog.String("component", "feature_handler")),
	}
}

// ListFeatures handles GET /api/features.
// Features are ordered by id, each with its options ordered by id.
func (h *FeatureHandler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	catalog, err := h.catalogs.Catalog(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	log.Debug("listing features", slog.Int("features", len(catalog.Features())))
	shared.RespondWithJSON(w, r, http.StatusOK, featuresToResponse(catalog.Features()))
}
