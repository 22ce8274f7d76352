// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/moviematch/internal/api"
	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/database"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/supervisor"
	"github.com/tomtom215/moviematch/internal/supervisor/services"
)

// storeBackend is what the handler and the store monitor share.
type storeBackend interface {
	api.StoreOpener
	services.Pinger
}

func main() {
	demo := flag.Bool("demo", false, "serve the example catalogue from memory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	if err := run(cfg, *demo); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Moviematch stopped")
}

func run(cfg *config.Config, demo bool) error {
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Bool("demo", demo).
		Msg("Starting Moviematch")

	engineCfg, err := cfg.Recommend.EngineConfig()
	if err != nil {
		return err
	}
	engine, err := recommend.NewEngine(engineCfg, logging.Logger())
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend storeBackend
	if demo {
		backend = recommend.NewMemoryStore(recommend.SampleMovies(), recommend.SampleRatings())
		logging.Info().Msg("Serving in-memory example catalogue")
	} else {
		db, err := openDatabase(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Err(err).Msg("Error closing database")
			}
		}()
		backend = db
	}

	handler, err := api.NewHandler(engine, backend, cfg.Server.RequestTimeout)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewStoreMonitorService(backend, 30*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	return nil
}

// openDatabase opens DuckDB and loads whatever data the config asks for.
func openDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*database.DB, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := loadData(ctx, db, cfg); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Err(closeErr).Msg("Error closing database")
		}
		return nil, err
	}

	counts, err := db.Counts(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to count catalogue rows")
	} else {
		logging.Info().
			Int64("movies", counts.Movies).
			Int64("ratings", counts.Ratings).
			Bool("sqlite_attached", db.Attached()).
			Msg("Database initialized")
	}
	return db, nil
}

func loadData(ctx context.Context, db *database.DB, cfg *config.DatabaseConfig) error {
	if cfg.SeedSampleData {
		seeded, err := db.SeedSampleData(ctx)
		if err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		logging.Info().Bool("seeded", seeded).Msg("Sample data seeding enabled")
	}

	if cfg.MoviesCSV != "" {
		if _, err := db.ImportMovieLens(ctx, cfg.MoviesCSV, cfg.RatingsCSV); err != nil {
			return fmt.Errorf("import movielens: %w", err)
		}
	}
	return nil
}
