//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/custom-cars-api/internal/ciutil"
	"github.com/phrazzld/custom-cars-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestTimeout bounds container startup and schema setup.
const TestTimeout = 2 * time.Minute

const postgresImage = "postgres:16-alpine"

var (
	shared     *sql.DB
	sharedErr  error
	sharedOnce sync.Once
)

// dockerAvailable reports whether testcontainers can reach a container engine.
// The provider lookup can panic on hosts without Docker.
func dockerAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer func() { _ = provider.Close() }()
	return true
}

// startContainer runs a postgres container and returns its connection URL.
// The container is reaped by testcontainers when the test binary exits.
func startContainer(ctx context.Context) (string, error) {
	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("cars_test"),
		tcpostgres.WithUsername("cars"),
		tcpostgres.WithPassword("cars"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		if ctr != nil {
			_ = testcontainers.TerminateContainer(ctr)
		}
		return "", fmt.Errorf("failed to start postgres container: %w", err)
	}
	return ctr.ConnectionString(ctx, "sslmode=disable")
}

func openShared() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	dsn := ciutil.TestDatabaseURL(nil)
	if dsn == "" {
		if !dockerAvailable() {
			if ciutil.IsCI() {
				return nil, fmt.Errorf("no test database in CI: set %s or provide Docker",
					ciutil.EnvTestDatabaseURL)
			}
			return nil, errSkip
		}
		var err error
		if dsn, err = startContainer(ctx); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, nil); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type skipError struct{}

func (skipError) Error() string {
	return "no test database: set " + ciutil.EnvTestDatabaseURL + " or start Docker"
}

var errSkip error = skipError{}

// GetTestDBWithT returns the shared, migrated test database, skipping the test
// when no database can be provided. The pool is shared; do not close it.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	sharedOnce.Do(func() {
		shared, sharedErr = openShared()
	})
	if sharedErr == errSkip {
		t.Skip(sharedErr.Error())
	}
	require.NoError(t, sharedErr, "test database setup failed")
	return shared
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// sharing the database do not see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin test transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// ResetData empties every table and restarts the id sequences. Use it in
// tests that must commit, such as transaction tests.
func ResetData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`TRUNCATE custom_item_options, custom_items, feature_options, features RESTART IDENTITY`)
	require.NoError(t, err, "failed to reset test data")
}
