package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/engine"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// Proposal is a client's requested configuration: a name, a flat list of
// option ids and the convertible flag.
type Proposal struct {
	Name          string
	OptionIDs     []int64
	IsConvertible bool
}

// ConfigurationService manages saved configurations (custom cars).
//
// Every write is validated by the configuration engine against the current
// catalog before anything is persisted. Validation failures are returned as
// *domain.ValidationError, *engine.FeatureOptionMismatchError or
// *engine.RuleViolationError; unknown ids as store.ErrConfigurationNotFound.
type ConfigurationService interface {
	// Preview validates and prices a proposal without persisting it.
	Preview(ctx context.Context, p Proposal) (*domain.Configuration, error)

	// Create validates a proposal and persists it atomically.
	Create(ctx context.Context, p Proposal) (*domain.Configuration, error)

	// Get returns one configuration with its options.
	Get(ctx context.Context, id int64) (*domain.Configuration, error)

	// List returns all configurations, newest first.
	List(ctx context.Context) ([]*domain.Configuration, error)

	// Replace validates a proposal and atomically overwrites the name, flag
	// and full option set of an existing configuration.
	Replace(ctx context.Context, id int64, p Proposal) (*domain.Configuration, error)

	// Delete removes a configuration and its option selections.
	Delete(ctx context.Context, id int64) error
}

type configurationServiceImpl struct {
	db          store.TxBeginner
	catalogs    CatalogService
	configStore store.ConfigurationStore
	engine      *engine.Engine
	logger      *slog.Logger
}

// NewConfigurationService creates a ConfigurationService.
// It returns an error if any required dependency is nil. A nil engine means
// engine.New(nil), which enforces the default rules.
func NewConfigurationService(
	db store.TxBeginner,
	catalogs CatalogService,
	configStore store.ConfigurationStore,
	eng *engine.Engine,
	logger *slog.Logger,
) (ConfigurationService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if catalogs == nil {
		return nil, domain.NewValidationError("catalogs", "cannot be nil", domain.ErrValidation)
	}
	if configStore == nil {
		return nil, domain.NewValidationError("configStore", "cannot be nil", domain.ErrValidation)
	}
	if eng == nil {
		eng = engine.New(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &configurationServiceImpl{
		db:          db,
		catalogs:    catalogs,
		configStore: configStore,
		engine:      eng,
		logger:      logger.With(slog.String("component", "configuration_service")),
	}, nil
}

// build runs p through the engine. An unknown option may mean the cached
// catalog is stale, so that case reloads the catalog once before failing.
func (s *configurationServiceImpl) build(ctx context.Context, op string, p Proposal) (*domain.Configuration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := s.engine.BuildFromOptionIDs(catalog, p.Name, p.OptionIDs, p.IsConvertible)
	if errors.Is(err, domain.ErrUnknownOption) {
		log.Debug("unknown option in proposal, reloading catalog", slog.String("operation", op))
		s.catalogs.Invalidate()
		if catalog, err = s.catalogs.Catalog(ctx); err != nil {
			return nil, err
		}
		cfg, err = s.engine.BuildFromOptionIDs(catalog, p.Name, p.OptionIDs, p.IsConvertible)
	}
	if err != nil {
		attrs := []any{slog.String("operation", op), slog.String("error", err.Error())}
		if rv, ok := engine.AsRuleViolation(err); ok {
			attrs = append(attrs,
				slog.String("rule", rv.Rule),
				slog.Int64("option_id", rv.OptionID))
		}
		log.Info("proposal rejected", attrs...)
		return nil, err
	}
	return cfg, nil
}

// Preview implements ConfigurationService.Preview.
func (s *configurationServiceImpl) Preview(ctx context.Context, p Proposal) (*domain.Configuration, error) {
	return s.build(ctx, "preview", p)
}

// Create implements ConfigurationService.Create.
func (s *configurationServiceImpl) Create(ctx context.Context, p Proposal) (*domain.Configuration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cfg, err := s.build(ctx, "create", p)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.configStore.WithTx(tx).Create(ctx, cfg)
	})
	if err != nil {
		log.Error("failed to save configuration",
			slog.String("error", err.Error()),
			slog.String("name", cfg.Name))
		return nil, NewConfigurationServiceError("create", "failed to save configuration", err)
	}

	log.Info("configuration created",
		slog.Int64("configuration_id", cfg.ID),
		slog.Int64("total_price_in_cents", cfg.TotalPriceInCents()))
	return cfg, nil
}

// Get implements ConfigurationService.Get.
func (s *configurationServiceImpl) Get(ctx context.Context, id int64) (*domain.Configuration, error) {
	if id <= 0 {
		return nil, store.ErrConfigurationNotFound
	}

	cfg, err := s.configStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get configuration",
			slog.String("error", err.Error()),
			slog.Int64("configuration_id", id))
		return nil, NewConfigurationServiceError("get", "failed to get configuration", err)
	}
	return cfg, nil
}

// List implements ConfigurationService.List.
func (s *configurationServiceImpl) List(ctx context.Context) ([]*domain.Configuration, error) {
	configs, err := s.configStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list configurations",
			slog.String("error", err.Error()))
		return nil, NewConfigurationServiceError("list", "failed to list configurations", err)
	}
	return configs, nil
}

// Replace implements ConfigurationService.Replace.
// The proposal is validated before the id is looked up, so an invalid body
// for a missing id is reported as a validation failure.
func (s *configurationServiceImpl) Replace(
	ctx context.Context,
	id int64,
	p Proposal,
) (*domain.Configuration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("configuration_id", id))

	cfg, err := s.build(ctx, "replace", p)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, store.ErrConfigurationNotFound
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.configStore.WithTx(tx).Replace(ctx, id, cfg)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to replace configuration", slog.String("error", err.Error()))
		return nil, NewConfigurationServiceError("replace", "failed to replace configuration", err)
	}

	log.Info("configuration replaced",
		slog.Int64("total_price_in_cents", cfg.TotalPriceInCents()))
	return cfg, nil
}

// Delete implements ConfigurationService.Delete.
func (s *configurationServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return store.ErrConfigurationNotFound
	}

	if err := s.configStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete configuration",
			slog.String("error", err.Error()),
			slog.Int64("configuration_id", id))
		return NewConfigurationServiceError("delete", "failed to delete configuration", err)
	}
	return nil
}
