package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockConfigurationStore is a testify/mock implementation of
// store.ConfigurationStore.
type TestifyMockConfigurationStore struct {
	mock.Mock
}

// Create is a mock implementation of store.ConfigurationStore.Create.
func (m *TestifyMockConfigurationStore) Create(ctx context.Context, cfg *domain.Configuration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// Replace is a mock implementation of store.ConfigurationStore.Replace.
func (m *TestifyMockConfigurationStore) Replace(
	ctx context.Context,
	id int64,
	cfg *domain.Configuration,
) error {
	args := m.Called(ctx, id, cfg)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ConfigurationStore.GetByID.
func (m *TestifyMockConfigurationStore) GetByID(ctx context.Context, id int64) (*domain.Configuration, error) {
	args := m.Called(ctx, id)
	if cfg, ok := args.Get(0).(*domain.Configuration); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.ConfigurationStore.List.
func (m *TestifyMockConfigurationStore) List(ctx context.Context) ([]*domain.Configuration, error) {
	args := m.Called(ctx)
	if configs, ok := args.Get(0).([]*domain.Configuration); ok {
		return configs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.ConfigurationStore.Delete.
func (m *TestifyMockConfigurationStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.ConfigurationStore.WithTx.
// It returns the mock itself so expectations apply inside the transaction.
func (m *TestifyMockConfigurationStore) WithTx(_ *sql.Tx) store.ConfigurationStore {
	return m
}
