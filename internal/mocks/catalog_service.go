package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/custom-cars-api/internal/domain"
)

// MockCatalogService implements service.CatalogService for testing.
type MockCatalogService struct {
	CatalogFn    func(ctx context.Context) (*domain.Catalog, error)
	InvalidateFn func()

	// Default response values, used when CatalogFn is nil
	Snapshot *domain.Catalog
	Err      error

	mu              sync.Mutex
	CatalogCalls    int
	InvalidateCalls int
}

// Catalog implements service.CatalogService.
func (m *MockCatalogService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	m.CatalogCalls++
	m.mu.Unlock()

	if m.CatalogFn != nil {
		return m.CatalogFn(ctx)
	}
	return m.Snapshot, m.Err
}

// Invalidate implements service.CatalogService.
func (m *MockCatalogService) Invalidate() {
	m.mu.Lock()
	m.InvalidateCalls++
	m.mu.Unlock()

	if m.InvalidateFn != nil {
		m.InvalidateFn()
	}
}
