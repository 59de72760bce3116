// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kitchencast/internal/metrics"
)

// Invalidator drops cached predictions for an item.
// forecast.PredictionCache satisfies it.
type Invalidator interface {
	InvalidateItem(item string) (int, error)
}

// InvalidationService consumes TransactionRecorded events and invalidates
// the prediction cache. It implements suture.Service.
type InvalidationService struct {
	subscriber message.Subscriber
	cache      Invalidator
	logger     zerolog.Logger
	name       string

	readyOnce sync.Once
	ready     chan struct{}
}

// NewInvalidationService creates the subscriber service. A nil cache makes
// it consume and acknowledge events without doing anything.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewInvalidationService(sub message.Subscriber, cache Invalidator, logger zerolog.Logger) *InvalidationService {
	return &InvalidationService{
		subscriber: sub,
		cache:      cache,
		logger:     logger.With().Str("service", "cache-invalidation").Logger(),
		name:       "cache-invalidation",
		ready:      make(chan struct{}),
	}
}

// Ready is closed once the first subscription is attached.
func (s *InvalidationService) Ready() <-chan struct{} {
	return s.ready
}

// Serve implements suture.Service.
func (s *InvalidationService) Serve(ctx context.Context) error {
	msgs, err := s.subscriber.Subscribe(ctx, TopicTransactionRecorded)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicTransactionRecorded, err)
	}
	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Info().Str("topic", TopicTransactionRecorded).Msg("cache invalidation service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache invalidation service shutting down")
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("subscription to %s closed", TopicTransactionRecorded)
			}
			s.handle(msg)
			msg.Ack()
		}
	}
}

// handle always lets the message be acked; a bad payload or cache error
// only costs a stale entry until TTL.
func (s *InvalidationService) handle(msg *message.Message) {
	ev, err := DeserializeEvent(msg.Payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed transaction event")
		return
	}
	if s.cache == nil {
		return
	}

	n, err := s.cache.InvalidateItem(ev.ItemName)
	if err != nil {
		s.logger.Warn().Err(err).Str("item", ev.ItemName).Msg("prediction cache invalidation failed")
		return
	}
	metrics.RecordCacheInvalidation(n)
	s.logger.Debug().
		Str("item", ev.ItemName).
		Int("removed", n).
		Str("correlation_id", msg.Metadata.Get("correlation_id")).
		Msg("prediction cache invalidated")
}

// String returns the service name for logging.
func (s *InvalidationService) String() string {
	return s.name
}
