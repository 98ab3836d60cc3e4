package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/custom-cars-api/internal/config"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// rootOptions holds state shared by every subcommand.
type rootOptions struct {
	configPath string

	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

// newRootCommand creates the command tree.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "custom-cars",
		Short:         "Custom car configurator API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logCloser != nil {
				return opts.logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to a config file (default: ./config.yaml when present)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))

	return cmd
}

// init loads configuration and sets up logging.
func (o *rootOptions) init() error {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, closer, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	o.config = cfg
	o.logger = log
	o.logCloser = closer

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("log_file", cfg.Server.LogFile != ""),
		slog.Duration("catalog_cache_ttl", cfg.Catalog.CacheTTL()))
	return nil
}

// withDatabase opens the database, runs fn and closes the pool.
func (o *rootOptions) withDatabase(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := setupAppDatabase(ctx, o.config, o.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			o.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()
	return fn(db)
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withDatabase(ctx, func(db *sql.DB) error {
				if migrate {
					if err := postgres.Migrate(ctx, db, postgres.MigrateUp, opts.logger); err != nil {
						return err
					}
				}

				app, err := newApplication(opts.config, opts.logger, db)
				if err != nil {
					return fmt.Errorf("failed to initialize application: %w", err)
				}
				return app.Run(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate {up|down|status|reset}",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateReset},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withDatabase(ctx, func(db *sql.DB) error {
				return postgres.Migrate(ctx, db, args[0], opts.logger)
			})
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the feature catalog and sample cars",
		Long: "Load the feature catalog and sample cars. Without --reset nothing is " +
			"written when features already exist.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withDatabase(ctx, func(db *sql.DB) error {
				app, err := newApplication(opts.config, opts.logger, db)
				if err != nil {
					return fmt.Errorf("failed to initialize application: %w", err)
				}

				res, err := app.seeder.Run(ctx, reset)
				if err != nil {
					return fmt.Errorf("seeding failed: %w", err)
				}
				if res.Skipped {
					fmt.Fprintln(cmd.OutOrStdout(), "catalog already present, nothing to do (use --reset to reseed)")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d features, %d options and %d cars\n",
					res.Features, res.Options, res.Cars)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "delete all cars and catalog data before seeding")
	return cmd
}
