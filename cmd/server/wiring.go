// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kitchencast/internal/api"
	"github.com/tomtom215/kitchencast/internal/archive"
	"github.com/tomtom215/kitchencast/internal/config"
	"github.com/tomtom215/kitchencast/internal/database"
	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/forecast/boost"
	"github.com/tomtom215/kitchencast/internal/ingest"
	"github.com/tomtom215/kitchencast/internal/insights"
)

// idleTimeout bounds keep-alive connections.
const idleTimeout = 60 * time.Second

// engineConfig maps the forecast config section onto the engine's settings.
func engineConfig(fc *config.ForecastConfig) forecast.Config {
	return forecast.Config{
		LookbackDays:     fc.LookbackDays,
		TopN:             fc.TopN,
		MinHistoryPoints: fc.MinHistoryPoints,
		Workers:          fc.Workers,
		IncreaseRatio:    fc.IncreaseRatio,
		ReduceRatio:      fc.ReduceRatio,
		Booster: boost.Config{
			Rounds:          fc.Trees,
			LearningRate:    fc.LearningRate,
			MaxLeaves:       fc.MaxLeaves,
			RowSubsample:    fc.RowSubsample,
			ColSubsample:    fc.ColSubsample,
			Lambda:          fc.Lambda,
			MinChildSamples: fc.MinChildSamples,
			Seed:            fc.Seed,
		},
	}
}

// app holds everything main wires into the supervisor tree. close releases
// resources in reverse order of acquisition.
type app struct {
	db           *database.DB
	cache        *forecast.BadgerCache
	bus          *gochannel.GoChannel
	server       *http.Server
	invalidation *ingest.InvalidationService
}

// newApp opens storage and builds the engine, the bus and the HTTP server.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (a *app, err error) {
	a = &app{}
	defer func() {
		if err != nil {
			a.close(logger)
		}
	}()

	a.db, err = database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engine, err := forecast.NewEngine(engineConfig(&cfg.Forecast), a.db, logger)
	if err != nil {
		return nil, err
	}

	// invalidator stays a nil interface when the cache is off.
	var invalidator ingest.Invalidator
	if cfg.Cache.Enabled {
		a.cache, err = forecast.OpenBadgerCache(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("open prediction cache: %w", err)
		}
		engine.SetCache(a.cache)
		invalidator = a.cache
		logger.Info().Str("path", cfg.Cache.Path).Dur("ttl", cfg.Cache.TTL).Msg("Prediction cache enabled")
	}

	store := archive.NewDuckDBStore(a.db.Conn())
	if err = store.CreateTable(ctx); err != nil {
		return nil, fmt.Errorf("create archive table: %w", err)
	}

	a.bus = ingest.NewBus(logger)
	a.invalidation = ingest.NewInvalidationService(a.bus, invalidator, logger)

	handler, err := api.NewHandler(api.Deps{
		Engine:    engine,
		Evaluator: forecast.NewEvaluator(engine, a.db, cfg.Accuracy.TopN),
		Archive:   store,
		Insights:  insights.NewService(engine, a.db, cfg.Alerts.WasteCostDangerThreshold),
		Ledger:    a.db,
		Publisher: ingest.NewPublisher(a.bus, ingest.DefaultBreakerConfig(), logger),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	a.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       idleTimeout,
	}
	return a, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (a *app) close(logger zerolog.Logger) {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing ingestion bus")
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing prediction cache")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}
}

// awaitTree blocks until the supervisor tree has returned. The tree sends
// exactly one value on errCh and never closes it.
func awaitTree(ctx context.Context, errCh <-chan error, logger zerolog.Logger) {
	var err error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree error")
	}
}
