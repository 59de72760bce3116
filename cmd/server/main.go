// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Command server runs the Kitchencast HTTP API under a supervisor tree.
//
// Startup order: configuration, logging, DuckDB, forecast engine and
// optional prediction cache, archive store, ingestion bus, router, then
// the supervisor tree. SIGINT or SIGTERM cancels the tree, which shuts
// the HTTP server down gracefully before storage is closed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/kitchencast/internal/config"
	"github.com/tomtom215/kitchencast/internal/logging"
	"github.com/tomtom215/kitchencast/internal/supervisor"
	"github.com/tomtom215/kitchencast/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("db_path", cfg.Database.Path).
		Int("lookback_days", cfg.Forecast.LookbackDays).
		Int("top_n", cfg.Forecast.TopN).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting Kitchencast")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer a.close(logger)

	// Bridge zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	if a.cache != nil {
		tree.AddDataService(services.NewCacheGCService(a.cache, services.DefaultGCInterval, logger))
	}
	tree.AddMessagingService(a.invalidation)
	tree.AddAPIService(services.NewHTTPServerService(a.server, cfg.Server.ShutdownTimeout))
	logger.Info().Str("addr", a.server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)

	awaitTree(ctx, errCh, logger)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logger.Info().Msg("Kitchencast stopped")
}
