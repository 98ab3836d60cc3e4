package mocks

import (
	"context"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/service"
)

// MockConfigurationService implements service.ConfigurationService for testing.
// A nil function field makes the method return zero values.
type MockConfigurationService struct {
	PreviewFn func(ctx context.Context, p service.Proposal) (*domain.Configuration, error)
	CreateFn  func(ctx context.Context, p service.Proposal) (*domain.Configuration, error)
	GetFn     func(ctx context.Context, id int64) (*domain.Configuration, error)
	ListFn    func(ctx context.Context) ([]*domain.Configuration, error)
	ReplaceFn func(ctx context.Context, id int64, p service.Proposal) (*domain.Configuration, error)
	DeleteFn  func(ctx context.Context, id int64) error
}

// Preview implements service.ConfigurationService.
func (m *MockConfigurationService) Preview(
	ctx context.Context,
	p service.Proposal,
) (*domain.Configuration, error) {
	if m.PreviewFn != nil {
		return m.PreviewFn(ctx, p)
	}
	return nil, nil
}

// Create implements service.ConfigurationService.
func (m *MockConfigurationService) Create(
	ctx context.Context,
	p service.Proposal,
) (*domain.Configuration, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil, nil
}

// Get implements service.ConfigurationService.
func (m *MockConfigurationService) Get(ctx context.Context, id int64) (*domain.Configuration, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, nil
}

// List implements service.ConfigurationService.
func (m *MockConfigurationService) List(ctx context.Context) ([]*domain.Configuration, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

// Replace implements service.ConfigurationService.
func (m *MockConfigurationService) Replace(
	ctx context.Context,
	id int64,
	p service.Proposal,
) (*domain.Configuration, error) {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, id, p)
	}
	return nil, nil
}

// Delete implements service.ConfigurationService.
func (m *MockConfigurationService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
