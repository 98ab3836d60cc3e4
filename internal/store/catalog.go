package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/custom-cars-api/internal/domain"
)

// CatalogStore reads and seeds the features and options catalog.
// Features and options are written only by seeding; request-time code only reads.
type CatalogStore interface {
	// Load returns every feature with its options as a validated Catalog snapshot.
	Load(ctx context.Context) (*domain.Catalog, error)

	// CountFeatures returns the number of stored features.
	// Seeding uses it to stay idempotent.
	CountFeatures(ctx context.Context) (int, error)

	// CreateFeature inserts a feature and sets its ID.
	// Returns ErrFeatureExists if the name is taken.
	CreateFeature(ctx context.Context, feature *domain.Feature) error

	// CreateOption inserts an option and sets its ID.
	// Returns ErrInvalidEntity if the feature does not exist.
	CreateOption(ctx context.Context, option *domain.Option) error

	// Reset removes every saved configuration, option and feature.
	// Seeding with --reset MUST run it in the same transaction as the inserts.
	Reset(ctx context.Context) error

	// WithTx returns a CatalogStore bound to tx.
	WithTx(tx *sql.Tx) CatalogStore
}
