package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/custom-cars-api/internal/domain"
)

// ConfigurationStore persists configurations (custom cars) as a row plus the
// set of selected option ids.
//
// Create and Replace touch several rows. They MUST be called on a store bound
// to a transaction with WithTx inside RunInTransaction, otherwise a failure
// part way through can leave a partial option set:
//
//	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
//	    return configStore.WithTx(tx).Create(ctx, cfg)
//	})
type ConfigurationStore interface {
	// Create inserts cfg and its option associations, then sets cfg.ID and cfg.CreatedAt.
	// Returns domain validation errors if cfg is invalid and ErrInvalidEntity
	// if an option id does not exist.
	Create(ctx context.Context, cfg *domain.Configuration) error

	// Replace overwrites the name, convertible flag and full option set of the
	// configuration with the given id. The previous option set is discarded,
	// not merged. cfg.ID and cfg.CreatedAt are set from the stored row.
	// Returns ErrConfigurationNotFound if the id does not exist.
	Replace(ctx context.Context, id int64, cfg *domain.Configuration) error

	// GetByID returns the configuration with its options materialized.
	// Returns ErrConfigurationNotFound if the id does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Configuration, error)

	// List returns every configuration, newest first.
	List(ctx context.Context) ([]*domain.Configuration, error)

	// Delete removes the configuration. Its option associations are removed by
	// the ON DELETE CASCADE foreign key.
	// Returns ErrConfigurationNotFound if the id does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a ConfigurationStore bound to tx.
	WithTx(tx *sql.Tx) ConfigurationStore
}
