package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogColumns = []string{
	"feature_id", "feature_name", "option_id", "option_name", "price_in_cents", "image", "requires_convertible",
}

func TestCatalogStore_Load(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM features f").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow(int64(1), "Exterior", int64(1), "Polar White", int64(0), "/images/car-white.png", false).
			AddRow(int64(1), "Exterior", int64(2), "Obsidian Black", int64(50000), "/images/car-black.png", false).
			AddRow(int64(2), "Roof", int64(5), "Standard Roof", int64(0), "", false).
			AddRow(int64(2), "Roof", int64(7), "Convertible Soft Top", int64(250000), "", true).
			AddRow(int64(3), "Trim", nil, nil, nil, nil, nil))

	catalog, err := NewPostgresCatalogStore(db, nil).Load(context.Background())
	require.NoError(t, err)

	features := catalog.Features()
	require.Len(t, features, 3)
	assert.Equal(t, "Exterior", features[0].Name)
	assert.Len(t, features[0].Options, 2)
	assert.Empty(t, features[2].Options, "a feature without options is kept")

	softTop, ok := catalog.Option(7)
	require.True(t, ok)
	assert.True(t, softTop.RequiresConvertible)
	assert.Equal(t, "Roof", softTop.FeatureName)
	assert.Equal(t, int64(250000), softTop.PriceInCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_LoadInconsistent(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM features f").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow(int64(1), "Exterior", int64(1), "Polar White", int64(-5), "", false))

	_, err := NewPostgresCatalogStore(db, nil).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestCatalogStore_CreateFeature(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO features").WithArgs("Wheels").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery("INSERT INTO features").WithArgs("Wheels").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "features_name_unique"})

	s := NewPostgresCatalogStore(db, nil)

	f := &domain.Feature{Name: "Wheels"}
	require.NoError(t, s.CreateFeature(context.Background(), f))
	assert.Equal(t, int64(3), f.ID)

	err := s.CreateFeature(context.Background(), &domain.Feature{Name: "Wheels"})
	assert.ErrorIs(t, err, store.ErrFeatureExists)
	assert.True(t, store.IsDuplicateError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_CreateOption(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO feature_options").
		WithArgs(int64(2), "Panoramic Sunroof", int64(120000), "/images/roof-panoramic.png", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(6)))
	mock.ExpectQuery("INSERT INTO feature_options").
		WithArgs(int64(99), "Orphan", int64(0), "", false).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	s := NewPostgresCatalogStore(db, nil)

	opt := &domain.Option{
		FeatureID:           2,
		Name:                "Panoramic Sunroof",
		PriceInCents:        120000,
		ImageRef:            "/images/roof-panoramic.png",
		RequiresConvertible: true,
	}
	require.NoError(t, s.CreateOption(context.Background(), opt))
	assert.Equal(t, int64(6), opt.ID)

	err := s.CreateOption(context.Background(), &domain.Option{FeatureID: 99, Name: "Orphan"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	err = s.CreateOption(context.Background(), &domain.Option{FeatureID: 2, Name: "Refund", PriceInCents: -1})
	assert.True(t, domain.IsValidationError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_CountAndReset(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec("TRUNCATE custom_item_options, custom_items, feature_options, features").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	s := NewPostgresCatalogStore(db, nil)
	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.WithTx(tx)
		n, err := txStore.CountFeatures(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, 4, n)
		return txStore.Reset(ctx)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_CountError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("relation \"features\" does not exist"))

	_, err := NewPostgresCatalogStore(db, nil).CountFeatures(context.Background())
	require.Error(t, err)
	var storeErr *store.StoreError
	assert.True(t, errors.As(err, &storeErr))
}
