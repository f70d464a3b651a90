package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shohag/airegistry/internal/api"
	"github.com/shohag/airegistry/internal/config"
	"github.com/shohag/airegistry/internal/registry"
	"github.com/shohag/airegistry/internal/storage"
	"github.com/shohag/airegistry/internal/validation"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "airegistry",
		Short:         "airegistry - registry of AI endpoint metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(endpointCmd(&configPath))
	rootCmd.AddCommand(importCmd(&configPath))
	rootCmd.AddCommand(exportCmd(&configPath))
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer app.close()

			if app.cfg.Storage.Seed {
				if err := app.seed(cmd.Context()); err != nil {
					return err
				}
			}

			server := api.NewServer(app.cfg.Server, app.svc, app.log)
			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					app.log.Fatal().Err(err).Msg("server error")
				}
			}()

			app.log.Info().
				Str("version", version).
				Int("port", app.cfg.Server.Port).
				Str("storage", app.cfg.Storage.Driver).
				Str("key", app.cfg.Storage.Key).
				Msg("airegistry is running")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			app.log.Info().Msg("shutting down...")

			if err := server.Shutdown(10 * time.Second); err != nil {
				app.log.Error().Err(err).Msg("server shutdown error")
			}

			app.log.Info().Msg("airegistry stopped")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "airegistry v%s\n", version)
		},
	}
}

// app holds the per-process dependencies built from config.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	slot  storage.Storage
	store *registry.Store
	svc   *registry.Service
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.Logging)

	ctx := context.Background()
	slot, err := setupStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	if err := slot.Migrate(ctx); err != nil {
		slot.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := registry.NewStore(slot, cfg.Storage.Key, log)
	return &app{
		cfg:   cfg,
		log:   log,
		slot:  slot,
		store: store,
		svc:   registry.NewService(store, validation.New(), log),
	}, nil
}

func (a *app) seed(ctx context.Context) error {
	seeded, err := a.svc.EnsureSeeded(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed endpoints: %w", err)
	}
	if seeded {
		a.log.Info().Int("count", len(registry.SeedEndpoints())).Msg("seed endpoints stored")
	}
	return nil
}

func (a *app) close() {
	if err := a.slot.Close(); err != nil {
		a.log.Error().Err(err).Msg("failed to close storage")
	}
}

// setupLogger writes to stderr so command output on stdout stays clean.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func setupStorage(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case "sqlite":
		log.Debug().Str("path", cfg.SQLite.Path).Msg("using SQLite storage")
		return storage.NewSQLite(cfg.SQLite.Path)
	case "bolt":
		log.Debug().Str("path", cfg.Bolt.Path).Str("bucket", cfg.Bolt.Bucket).Msg("using bbolt storage")
		return storage.NewBolt(cfg.Bolt.Path, cfg.Bolt.Bucket)
	case "postgres":
		log.Debug().Str("table", cfg.Postgres.Table).Msg("using PostgreSQL storage")
		return storage.NewPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.Table)
	case "memory":
		log.Debug().Msg("using in-memory storage")
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedDriver, cfg.Driver)
	}
}
