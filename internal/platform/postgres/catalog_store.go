package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// PostgresCatalogStore implements store.CatalogStore on the features and
// feature_options tables.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a catalog store bound to db, which may be a
// *sql.DB or a *sql.Tx. If logger is nil, slog.Default is used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

const loadCatalogQuery = `
	SELECT f.id, f.name,
	       fo.id, fo.name, fo.price_in_cents, fo.image, fo.requires_convertible
	FROM features f
	LEFT JOIN feature_options fo ON fo.feature_id = f.id
	ORDER BY f.id, fo.id
`

// Load implements store.CatalogStore.Load.
func (s *PostgresCatalogStore) Load(ctx context.Context) (*domain.Catalog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, loadCatalogQuery)
	if err != nil {
		log.Error("failed to query catalog", slog.String("error", err.Error()))
		return nil, store.NewStoreError("catalog", "load", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var features []domain.Feature
	for rows.Next() {
		var (
			featureID   int64
			featureName string
			optionID    sql.NullInt64
			optionName  sql.NullString
			price       sql.NullInt64
			image       sql.NullString
			convertible sql.NullBool
		)
		if err := rows.Scan(&featureID, &featureName,
			&optionID, &optionName, &price, &image, &convertible); err != nil {
			log.Error("failed to scan catalog row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("catalog", "load", "scan failed", err)
		}

		if n := len(features); n == 0 || features[n-1].ID != featureID {
			features = append(features, domain.Feature{ID: featureID, Name: featureName})
		}
		if !optionID.Valid {
			continue
		}
		f := &features[len(features)-1]
		f.Options = append(f.Options, domain.Option{
			ID:                  optionID.Int64,
			FeatureID:           featureID,
			Name:                optionName.String,
			PriceInCents:        price.Int64,
			ImageRef:            image.String,
			RequiresConvertible: convertible.Bool,
		})
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning catalog rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("catalog", "load", "row iteration failed", err)
	}

	catalog, err := domain.NewCatalog(features)
	if err != nil {
		log.Error("stored catalog is inconsistent", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("catalog loaded",
		slog.Int("features", len(catalog.Features())),
		slog.Int("options", catalog.OptionCount()))
	return catalog, nil
}

// CountFeatures implements store.CatalogStore.CountFeatures.
func (s *PostgresCatalogStore) CountFeatures(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM features`).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count features",
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("feature", "count", "query failed", err)
	}
	return n, nil
}

// CreateFeature implements store.CatalogStore.CreateFeature.
func (s *PostgresCatalogStore) CreateFeature(ctx context.Context, feature *domain.Feature) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO features (name) VALUES ($1) RETURNING id`,
		feature.Name,
	).Scan(&feature.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("feature name already exists", slog.String("feature", feature.Name))
			return MapUniqueViolation(err, store.ErrFeatureExists)
		}
		log.Error("failed to create feature",
			slog.String("error", err.Error()),
			slog.String("feature", feature.Name))
		return store.NewStoreError("feature", "create", "insert failed", MapError(err))
	}

	log.Debug("feature created",
		slog.Int64("feature_id", feature.ID),
		slog.String("feature", feature.Name))
	return nil
}

// CreateOption implements store.CatalogStore.CreateOption.
func (s *PostgresCatalogStore) CreateOption(ctx context.Context, option *domain.Option) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if option.PriceInCents < 0 {
		return domain.NewValidationError("price_in_cents", "cannot be negative", nil)
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO feature_options (feature_id, name, price_in_cents, image, requires_convertible)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		option.FeatureID,
		option.Name,
		option.PriceInCents,
		option.ImageRef,
		option.RequiresConvertible,
	).Scan(&option.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("option references a missing feature",
				slog.Int64("feature_id", option.FeatureID),
				slog.String("option", option.Name))
			return fmt.Errorf("%w: feature %d not found", store.ErrInvalidEntity, option.FeatureID)
		}
		log.Error("failed to create option",
			slog.String("error", err.Error()),
			slog.String("option", option.Name))
		return store.NewStoreError("option", "create", "insert failed", MapError(err))
	}

	log.Debug("option created",
		slog.Int64("option_id", option.ID),
		slog.Int64("feature_id", option.FeatureID),
		slog.Bool("requires_convertible", option.RequiresConvertible))
	return nil
}

// Reset implements store.CatalogStore.Reset.
func (s *PostgresCatalogStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`TRUNCATE custom_item_options, custom_items, feature_options, features RESTART IDENTITY`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to reset catalog",
			slog.String("error", err.Error()))
		return store.NewStoreError("catalog", "reset", "truncate failed", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("catalog and saved cars removed")
	return nil
}

// WithTx implements store.CatalogStore.WithTx.
func (s *PostgresCatalogStore) WithTx(tx *sql.Tx) store.CatalogStore {
	return &PostgresCatalogStore{db: tx, logger: s.logger}
}
