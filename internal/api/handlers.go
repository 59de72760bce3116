// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package api exposes the forecasting engine, the archive and the
// administrative ledger over HTTP.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, dependencies, shared helpers (this file)
//   - handlers_forecast.go: live forecast, archive, accuracy, CSV export
//   - handlers_insights.go: insights, waste cost, alerts, revenue dashboard
//   - handlers_admin.go: events, transactions, menu
//   - handlers_health.go: health probe
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kitchencast/internal/archive"
	"github.com/tomtom215/kitchencast/internal/database"
	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/ingest"
	"github.com/tomtom215/kitchencast/internal/insights"
)

// Forecaster computes the ranked next-day forecast.
type Forecaster interface {
	Compute(ctx context.Context, asOf time.Time) (*forecast.Forecast, error)
}

// AccuracyEvaluator scores forecasts against realized sales.
type AccuracyEvaluator interface {
	Evaluate(ctx context.Context, today time.Time) (*forecast.Report, error)
	CompareSnapshot(ctx context.Context, day time.Time, results []forecast.Result) (*forecast.Report, error)
}

// InsightSource derives insights, waste valuation and alerts.
type InsightSource interface {
	Insights(ctx context.Context, asOf time.Time) (insights.Insights, error)
	WasteCost(ctx context.Context, asOf time.Time) (insights.WasteReport, error)
	Alerts(ctx context.Context, asOf time.Time) ([]insights.Alert, error)
}

// Ledger is the administrative write side of the database.
type Ledger interface {
	InsertTransaction(ctx context.Context, tx *database.Transaction) (int64, error)
	ListEvents(ctx context.Context) ([]forecast.Event, error)
	AddEvent(ctx context.Context, e *forecast.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	UpsertMenuItem(ctx context.Context, item *database.MenuItem) error
	ListMenu(ctx context.Context) ([]database.MenuItem, error)
	TopItem(ctx context.Context) (*database.ItemSales, error)
	DailyRevenue(ctx context.Context, from, to time.Time) ([]database.RevenuePoint, error)
	MonthlyRevenue(ctx context.Context) ([]database.RevenuePoint, error)
	Ping(ctx context.Context) error
}

// TransactionPublisher announces recorded transactions.
type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, ev *ingest.TransactionRecorded) error
	State() string
}

// Deps are the collaborators a Handler needs. Publisher may be nil, in
// which case recorded transactions are not announced.
type Deps struct {
	Engine    Forecaster
	Evaluator AccuracyEvaluator
	Archive   archive.Store
	Insights  InsightSource
	Ledger    Ledger
	Publisher TransactionPublisher
	Logger    zerolog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Handler contains dependencies for API handlers
type Handler struct {
	engine    Forecaster
	evaluator AccuracyEvaluator
	archive   archive.Store
	insights  InsightSource
	ledger    Ledger
	publisher TransactionPublisher
	logger    zerolog.Logger
	now       func() time.Time
	startTime time.Time
}

// NewHandler builds a Handler. Engine, Evaluator, Archive, Insights and
// Ledger are required.
//
//nolint:gocritic // Deps is assembled once at startup
func NewHandler(deps Deps) (*Handler, error) {
	switch {
	case deps.Engine == nil:
		return nil, errors.New("api: engine is required")
	case deps.Evaluator == nil:
		return nil, errors.New("api: evaluator is required")
	case deps.Archive == nil:
		return nil, errors.New("api: archive store is required")
	case deps.Insights == nil:
		return nil, errors.New("api: insights service is required")
	case deps.Ledger == nil:
		return nil, errors.New("api: ledger is required")
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		engine:    deps.Engine,
		evaluator: deps.Evaluator,
		archive:   deps.Archive,
		insights:  deps.Insights,
		ledger:    deps.Ledger,
		publisher: deps.Publisher,
		logger:    deps.Logger.With().Str("component", "api").Logger(),
		now:       now,
		startTime: time.Now(),
	}, nil
}

// today is the current UTC calendar day.
func (h *Handler) today() time.Time {
	return forecast.Day(h.now().UTC())
}

// dayParam reads an optional YYYY-MM-DD query parameter, defaulting to
// today. ok is false when a response has already been written.
func (h *Handler) dayParam(rw *ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return h.today(), true
	}
	d, err := forecast.ParseDay(raw)
	if err != nil {
		rw.ValidationError(dateFieldError(name, raw))
		return time.Time{}, false
	}
	return d, true
}
