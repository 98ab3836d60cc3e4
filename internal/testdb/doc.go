//go:build integration

// Package testdb provides a migrated PostgreSQL database for integration
// tests.
//
// When CARS_TEST_DB_URL (or DATABASE_URL) is set that database is used.
// Otherwise a disposable postgres container is started once per test binary
// with testcontainers-go. Tests are skipped when neither is available, except
// under CI where setup fails instead.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresConfigurationStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
