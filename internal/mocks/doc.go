// Package mocks provides shared test doubles for the service and store
// interfaces.
//
// Most mocks use function fields: set the field for the method under test
// and leave the rest nil to get the mock's default return values.
//
//	catalogs := &mocks.MockCatalogService{
//	    CatalogFn: func(ctx context.Context) (*domain.Catalog, error) {
//	        return catalog, nil
//	    },
//	}
//
// The configuration store mock is built on testify/mock instead, for tests
// that assert exact call arguments and ordering.
package mocks
