package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/store"
	"golang.org/x/sync/singleflight"
)

const catalogCacheKey = "catalog"

// CatalogService provides read access to the feature catalog.
type CatalogService interface {
	// Catalog returns the current catalog snapshot. Snapshots are immutable
	// and may be shared between requests.
	Catalog(ctx context.Context) (*domain.Catalog, error)

	// Invalidate drops any cached snapshot so the next Catalog call reloads.
	Invalidate()
}

type catalogServiceImpl struct {
	catalogStore store.CatalogStore
	cache        *cache.Cache
	loads        singleflight.Group
	logger       *slog.Logger
}

// NewCatalogService creates a CatalogService that caches snapshots for ttl.
// A ttl of zero disables caching.
func NewCatalogService(
	catalogStore store.CatalogStore,
	ttl time.Duration,
	logger *slog.Logger,
) (CatalogService, error) {
	if catalogStore == nil {
		return nil, domain.NewValidationError("catalogStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &catalogServiceImpl{
		catalogStore: catalogStore,
		logger:       logger.With(slog.String("component", "catalog_service")),
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s, nil
}

// Catalog implements CatalogService.Catalog.
func (s *catalogServiceImpl) Catalog(ctx context.Context) (*domain.Catalog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.cache != nil {
		if cached, ok := s.cache.Get(catalogCacheKey); ok {
			return cached.(*domain.Catalog), nil
		}
	}

	// Concurrent misses share one load.
	v, err, shared := s.loads.Do(catalogCacheKey, func() (interface{}, error) {
		catalog, err := s.catalogStore.Load(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetDefault(catalogCacheKey, catalog)
		}
		return catalog, nil
	})
	if err != nil {
		log.Error("failed to load catalog", slog.String("error", err.Error()))
		return nil, NewCatalogServiceError("load", "failed to load catalog", err)
	}

	catalog := v.(*domain.Catalog)
	log.Debug("catalog loaded from store",
		slog.Int("features", len(catalog.Features())),
		slog.Bool("shared_load", shared))
	return catalog, nil
}

// Invalidate implements CatalogService.Invalidate.
func (s *catalogServiceImpl) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(catalogCacheKey)
	}
}
