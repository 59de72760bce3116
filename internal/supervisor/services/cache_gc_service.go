// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGCInterval is how often the prediction cache is compacted.
const DefaultGCInterval = 10 * time.Minute

// GarbageCollector reclaims space in a persistent cache.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService periodically compacts the prediction cache. A failed
// pass is logged and retried on the next tick; it never stops the service.
type CacheGCService struct {
	cache    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheGCService creates the service. A non-positive interval selects
// DefaultGCInterval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheGCService(cache GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &CacheGCService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache GC service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache GC service shutting down")
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.cache.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("cache GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("cache GC complete")
		}
	}
}

// String returns the service name for logging.
func (s *CacheGCService) String() string {
	return "cache-gc"
}
