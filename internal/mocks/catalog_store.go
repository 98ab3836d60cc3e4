package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// MockCatalogStore implements store.CatalogStore for testing.
type MockCatalogStore struct {
	LoadFn          func(ctx context.Context) (*domain.Catalog, error)
	CountFeaturesFn func(ctx context.Context) (int, error)
	CreateFeatureFn func(ctx context.Context, feature *domain.Feature) error
	CreateOptionFn  func(ctx context.Context, option *domain.Option) error
	ResetFn         func(ctx context.Context) error

	mu        sync.Mutex
	LoadCalls int
}

// Load implements store.CatalogStore.
func (m *MockCatalogStore) Load(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	m.LoadCalls++
	m.mu.Unlock()

	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	return domain.NewCatalog(nil)
}

// CountFeatures implements store.CatalogStore.
func (m *MockCatalogStore) CountFeatures(ctx context.Context) (int, error) {
	if m.CountFeaturesFn != nil {
		return m.CountFeaturesFn(ctx)
	}
	return 0, nil
}

// CreateFeature implements store.CatalogStore.
func (m *MockCatalogStore) CreateFeature(ctx context.Context, feature *domain.Feature) error {
	if m.CreateFeatureFn != nil {
		return m.CreateFeatureFn(ctx, feature)
	}
	return nil
}

// CreateOption implements store.CatalogStore.
func (m *MockCatalogStore) CreateOption(ctx context.Context, option *domain.Option) error {
	if m.CreateOptionFn != nil {
		return m.CreateOptionFn(ctx, option)
	}
	return nil
}

// Reset implements store.CatalogStore.
func (m *MockCatalogStore) Reset(ctx context.Context) error {
	if m.ResetFn != nil {
		return m.ResetFn(ctx)
	}
	return nil
}

// WithTx implements store.CatalogStore. The mock ignores the transaction.
func (m *MockCatalogStore) WithTx(_ *sql.Tx) store.CatalogStore {
	return m
}

// LoadCount returns how many times Load was called.
func (m *MockCatalogStore) LoadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoadCalls
}
