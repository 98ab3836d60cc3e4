package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/service"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// Result summarizes a seeding run.
type Result struct {
	Skipped  bool
	Features int
	Options  int
	Cars     int
}

// Seeder writes catalog data and sample cars.
type Seeder struct {
	db           store.TxBeginner
	catalogStore store.CatalogStore
	catalogs     service.CatalogService
	cars         service.ConfigurationService
	features     []FeatureSeed
	samples      []CarSeed
	logger       *slog.Logger
}

// NewSeeder creates a Seeder for DefaultFeatures and DefaultCars.
func NewSeeder(
	db store.TxBeginner,
	catalogStore store.CatalogStore,
	catalogs service.CatalogService,
	cars service.ConfigurationService,
	logger *slog.Logger,
) (*Seeder, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if catalogStore == nil {
		return nil, domain.NewValidationError("catalogStore", "cannot be nil", domain.ErrValidation)
	}
	if catalogs == nil {
		return nil, domain.NewValidationError("catalogs", "cannot be nil", domain.ErrValidation)
	}
	if cars == nil {
		return nil, domain.NewValidationError("cars", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Seeder{
		db:           db,
		catalogStore: catalogStore,
		catalogs:     catalogs,
		cars:         cars,
		features:     DefaultFeatures(),
		samples:      DefaultCars(),
		logger:       logger.With(slog.String("component", "seeder")),
	}, nil
}

// Run seeds the database.
//
// Without reset, Run does nothing when any feature already exists. With
// reset, every configuration, option and feature is removed first, in the
// same transaction that inserts the catalog. Sample cars are created after
// that transaction commits.
func (s *Seeder) Run(ctx context.Context, reset bool) (Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !reset {
		count, err := s.catalogStore.CountFeatures(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("failed to count features: %w", err)
		}
		if count > 0 {
			log.Info("catalog already seeded, skipping", slog.Int("features", count))
			return Result{Skipped: true}, nil
		}
	}

	var res Result
	optionIDs := make(map[string]int64)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		catalogStore := s.catalogStore.WithTx(tx)

		if reset {
			if err := catalogStore.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset catalog: %w", err)
			}
			log.Info("existing catalog and cars removed")
		}

		for _, fs := range s.features {
			feature := &domain.Feature{Name: fs.Name}
			if err := catalogStore.CreateFeature(ctx, feature); err != nil {
				return fmt.Errorf("failed to create feature %q: %w", fs.Name, err)
			}
			res.Features++

			for _, opt := range fs.Options {
				option := &domain.Option{
					FeatureID:           feature.ID,
					FeatureName:         feature.Name,
					Name:                opt.Name,
					PriceInCents:        opt.PriceInCents,
					ImageRef:            opt.Image,
					RequiresConvertible: opt.RequiresConvertible,
				}
				if err := catalogStore.CreateOption(ctx, option); err != nil {
					return fmt.Errorf("failed to create option %q: %w", opt.Name, err)
				}
				optionIDs[opt.Name] = option.ID
				res.Options++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	// The catalog just changed underneath any cached snapshot.
	s.catalogs.Invalidate()

	for _, car := range s.samples {
		ids := make([]int64, 0, len(car.Options))
		for _, name := range car.Options {
			id, ok := optionIDs[name]
			if !ok {
				return res, fmt.Errorf("sample car %q refers to unknown option %q", car.Name, name)
			}
			ids = append(ids, id)
		}

		cfg, err := s.cars.Create(ctx, service.Proposal{
			Name:          car.Name,
			OptionIDs:     ids,
			IsConvertible: car.IsConvertible,
		})
		if err != nil {
			return res, fmt.Errorf("failed to create sample car %q: %w", car.Name, err)
		}
		res.Cars++
		log.Debug("sample car created",
			slog.Int64("configuration_id", cfg.ID),
			slog.String("name", cfg.Name))
	}

	log.Info("database seeded",
		slog.Int("features", res.Features),
		slog.Int("options", res.Options),
		slog.Int("cars", res.Cars))
	return res, nil
}
