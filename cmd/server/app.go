package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/custom-cars-api/internal/config"
	"github.com/phrazzld/custom-cars-api/internal/engine"
	"github.com/phrazzld/custom-cars-api/internal/platform/postgres"
	"github.com/phrazzld/custom-cars-api/internal/seed"
	"github.com/phrazzld/custom-cars-api/internal/service"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// application holds the shared dependencies of the server and the
// maintenance commands.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	catalogStore store.CatalogStore
	configStore  store.ConfigurationStore

	catalogs service.CatalogService
	cars     service.ConfigurationService
	seeder   *seed.Seeder
}

// newApplication wires stores and services around an open database.
// The caller owns db and closes it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.catalogStore = postgres.NewPostgresCatalogStore(db, logger)
	app.configStore = postgres.NewPostgresConfigurationStore(db, logger)

	var err error
	app.catalogs, err = service.NewCatalogService(app.catalogStore, cfg.Catalog.CacheTTL(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.cars, err = service.NewConfigurationService(db, app.catalogs, app.configStore, engine.New(nil), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create configuration service: %w", err)
	}

	app.seeder, err = seed.NewSeeder(db, app.catalogStore, app.catalogs, app.cars, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create seeder: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
