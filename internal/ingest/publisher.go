// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/kitchencast/internal/logging"
	"github.com/tomtom215/kitchencast/internal/metrics"
)

// Publish outcomes recorded in metrics.
const (
	outcomeOK          = "ok"
	outcomeError       = "error"
	outcomeBreakerOpen = "breaker_open"
)

// BreakerConfig configures the publish circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // closed-state count reset; 0 never resets
	Timeout          time.Duration // open-state duration before probing
	FailureThreshold uint32        // consecutive failures that trip the breaker
}

// DefaultBreakerConfig returns production breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "ingest-publisher",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// NewCircuitBreaker creates a circuit breaker that trips after
// FailureThreshold consecutive failures and logs state changes.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCircuitBreaker(cfg BreakerConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[any] {
	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// Publisher sends ingestion events through a circuit breaker.
type Publisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker[any]
	logger    zerolog.Logger
}

// NewPublisher wraps a Watermill publisher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(pub message.Publisher, cfg BreakerConfig, logger zerolog.Logger) *Publisher {
	logger = logger.With().Str("component", "ingest-publisher").Logger()
	return &Publisher{
		publisher: pub,
		breaker:   NewCircuitBreaker(cfg, logger),
		logger:    logger,
	}
}

// PublishTransaction announces a recorded transaction. The message carries
// the request's correlation ID when the context has one.
func (p *Publisher) PublishTransaction(ctx context.Context, ev *TransactionRecorded) error {
	data, err := SerializeEvent(ev)
	if err != nil {
		return err
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set("item_name", ev.ItemName)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set("correlation_id", id)
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.publisher.Publish(TopicTransactionRecorded, msg)
	})
	switch {
	case err == nil:
		metrics.RecordIngestPublish(outcomeOK)
		p.logger.Debug().Str("message_id", msg.UUID).Str("item", ev.ItemName).Msg("transaction event published")
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordIngestPublish(outcomeBreakerOpen)
	default:
		metrics.RecordIngestPublish(outcomeError)
	}
	return fmt.Errorf("publish %s: %w", TopicTransactionRecorded, err)
}

// State reports the breaker state for health output.
func (p *Publisher) State() string {
	return p.breaker.State().String()
}
