package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// PostgresConfigurationStore implements store.ConfigurationStore on the
// custom_items and custom_item_options tables.
type PostgresConfigurationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresConfigurationStore creates a configuration store bound to db,
// which may be a *sql.DB or a *sql.Tx. If logger is nil, slog.Default is used.
func NewPostgresConfigurationStore(db store.DBTX, logger *slog.Logger) *PostgresConfigurationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresConfigurationStore{
		db:     db,
		logger: logger.With(slog.String("component", "configuration_store")),
	}
}

var _ store.ConfigurationStore = (*PostgresConfigurationStore)(nil)

const (
	insertItemQuery = `
		INSERT INTO custom_items (name, is_convertible)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	updateItemQuery = `
		UPDATE custom_items
		SET name = $1, is_convertible = $2
		WHERE id = $3
		RETURNING created_at
	`

	deleteItemOptionsQuery = `DELETE FROM custom_item_options WHERE custom_item_id = $1`

	insertItemOptionQuery = `
		INSERT INTO custom_item_options (custom_item_id, feature_option_id)
		VALUES ($1, $2)
	`

	deleteItemQuery = `DELETE FROM custom_items WHERE id = $1`

	// selectItemsQuery returns one row per selected option, or a single row
	// with NULL option columns for an item without options.
	selectItemsQuery = `
		SELECT ci.id, ci.name, ci.created_at, ci.is_convertible,
		       fo.id, fo.feature_id, f.name, fo.name, fo.price_in_cents, fo.image, fo.requires_convertible
		FROM custom_items ci
		LEFT JOIN custom_item_options cio ON cio.custom_item_id = ci.id
		LEFT JOIN feature_options fo ON fo.id = cio.feature_option_id
		LEFT JOIN features f ON f.id = fo.feature_id
	`

	getItemQuery = selectItemsQuery + `
		WHERE ci.id = $1
		ORDER BY fo.feature_id, fo.id
	`

	listItemsQuery = selectItemsQuery + `
		ORDER BY ci.created_at DESC, ci.id DESC, fo.feature_id, fo.id
	`
)

// Create implements store.ConfigurationStore.Create.
func (s *PostgresConfigurationStore) Create(ctx context.Context, cfg *domain.Configuration) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := cfg.Validate(); err != nil {
		log.Warn("configuration validation failed during create",
			slog.String("error", err.Error()),
			slog.String("name", cfg.Name))
		return err
	}

	err := s.db.QueryRowContext(ctx, insertItemQuery, cfg.Name, cfg.IsConvertible).
		Scan(&cfg.ID, &cfg.CreatedAt)
	if err != nil {
		log.Error("failed to insert configuration",
			slog.String("error", err.Error()),
			slog.String("name", cfg.Name))
		return store.NewStoreError("configuration", "create", "insert failed", MapError(err))
	}

	if err := s.insertOptions(ctx, log, cfg.ID, cfg.OptionIDs()); err != nil {
		return err
	}

	log.Info("configuration created",
		slog.Int64("configuration_id", cfg.ID),
		slog.Int("options", len(cfg.Options)),
		slog.Bool("is_convertible", cfg.IsConvertible))
	return nil
}

// Replace implements store.ConfigurationStore.Replace.
func (s *PostgresConfigurationStore) Replace(ctx context.Context, id int64, cfg *domain.Configuration) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("configuration_id", id))

	if err := cfg.Validate(); err != nil {
		log.Warn("configuration validation failed during replace", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, updateItemQuery, cfg.Name, cfg.IsConvertible, id).Scan(&cfg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("configuration not found for replace")
			return store.ErrConfigurationNotFound
		}
		log.Error("failed to update configuration", slog.String("error", err.Error()))
		return store.NewStoreError("configuration", "replace", "update failed", MapError(err))
	}
	cfg.ID = id

	if _, err := s.db.ExecContext(ctx, deleteItemOptionsQuery, id); err != nil {
		log.Error("failed to clear configuration options", slog.String("error", err.Error()))
		return store.NewStoreError("configuration", "replace", "delete options failed", MapError(err))
	}

	if err := s.insertOptions(ctx, log, id, cfg.OptionIDs()); err != nil {
		return err
	}

	log.Info("configuration replaced",
		slog.Int("options", len(cfg.Options)),
		slog.Bool("is_convertible", cfg.IsConvertible))
	return nil
}

func (s *PostgresConfigurationStore) insertOptions(
	ctx context.Context,
	log *slog.Logger,
	itemID int64,
	optionIDs []int64,
) error {
	for _, optionID := range optionIDs {
		if _, err := s.db.ExecContext(ctx, insertItemOptionQuery, itemID, optionID); err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("configuration references a missing option",
					slog.Int64("configuration_id", itemID),
					slog.Int64("option_id", optionID))
				return fmt.Errorf("%w: option %d not found", store.ErrInvalidEntity, optionID)
			}
			log.Error("failed to insert configuration option",
				slog.String("error", err.Error()),
				slog.Int64("configuration_id", itemID),
				slog.Int64("option_id", optionID))
			return store.NewStoreError("configuration", "save options", "insert failed", MapError(err))
		}
	}
	return nil
}

// GetByID implements store.ConfigurationStore.GetByID.
func (s *PostgresConfigurationStore) GetByID(ctx context.Context, id int64) (*domain.Configuration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	configs, err := s.query(ctx, log, "get", getItemQuery, id)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		log.Debug("configuration not found", slog.Int64("configuration_id", id))
		return nil, store.ErrConfigurationNotFound
	}
	return configs[0], nil
}

// List implements store.ConfigurationStore.List.
func (s *PostgresConfigurationStore) List(ctx context.Context) ([]*domain.Configuration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	configs, err := s.query(ctx, log, "list", listItemsQuery)
	if err != nil {
		return nil, err
	}
	log.Debug("configurations listed", slog.Int("count", len(configs)))
	return configs, nil
}

// query runs a select built on selectItemsQuery and folds the joined rows
// into configurations, keeping the row order of the first appearance.
func (s *PostgresConfigurationStore) query(
	ctx context.Context,
	log *slog.Logger,
	op string,
	query string,
	args ...any,
) ([]*domain.Configuration, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query configurations", slog.String("error", err.Error()))
		return nil, store.NewStoreError("configuration", op, "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	configs := make([]*domain.Configuration, 0)
	byID := make(map[int64]*domain.Configuration)
	for rows.Next() {
		var (
			cfg         domain.Configuration
			optionID    sql.NullInt64
			featureID   sql.NullInt64
			featureName sql.NullString
			optionName  sql.NullString
			price       sql.NullInt64
			image       sql.NullString
			convertible sql.NullBool
		)
		if err := rows.Scan(
			&cfg.ID, &cfg.Name, &cfg.CreatedAt, &cfg.IsConvertible,
			&optionID, &featureID, &featureName, &optionName, &price, &image, &convertible,
		); err != nil {
			log.Error("failed to scan configuration row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("configuration", op, "scan failed", err)
		}

		current, ok := byID[cfg.ID]
		if !ok {
			cfg.Selection = domain.Selection{}
			cfg.Options = []domain.Option{}
			current = &cfg
			byID[cfg.ID] = current
			configs = append(configs, current)
		}
		if !optionID.Valid {
			continue
		}
		current.Options = append(current.Options, domain.Option{
			ID:                  optionID.Int64,
			FeatureID:           featureID.Int64,
			FeatureName:         featureName.String,
			Name:                optionName.String,
			PriceInCents:        price.Int64,
			ImageRef:            image.String,
			RequiresConvertible: convertible.Bool,
		})
		current.Selection[featureID.Int64] = optionID.Int64
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning configuration rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("configuration", op, "row iteration failed", err)
	}
	return configs, nil
}

// Delete implements store.ConfigurationStore.Delete.
func (s *PostgresConfigurationStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("configuration_id", id))

	result, err := s.db.ExecContext(ctx, deleteItemQuery, id)
	if err != nil {
		log.Error("failed to delete configuration", slog.String("error", err.Error()))
		return store.NewStoreError("configuration", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrConfigurationNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("configuration not found for delete")
		}
		return err
	}

	log.Info("configuration deleted")
	return nil
}

// WithTx implements store.ConfigurationStore.WithTx.
func (s *PostgresConfigurationStore) WithTx(tx *sql.Tx) store.ConfigurationStore {
	return &PostgresConfigurationStore{db: tx, logger: s.logger}
}
