// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package archive persists forecast snapshots. A snapshot row is written
// once per (forecast_date, item_name) and never overwritten, so a saved
// forecast can later be scored against what actually sold.
package archive

import (
	"context"
	"time"

	"github.com/tomtom215/kitchencast/internal/forecast"
)

// RecentDatesLimit caps ListDates.
const RecentDatesLimit = 60

// Entry is one archived forecast row.
type Entry struct {
	ID           int64     `json:"id"`
	ForecastDate string    `json:"forecast_date"`
	GeneratedAt  time.Time `json:"generated_at"`
	forecast.Result
}

// DateSummary describes one archived forecast date.
type DateSummary struct {
	ForecastDate string    `json:"forecast_date"`
	ItemCount    int       `json:"item_count"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// SaveResult counts the outcome of a Save. Rows already present for the
// date are skipped, never replaced.
type SaveResult struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

// Store defines the interface for forecast archive persistence.
type Store interface {
	// Save archives results under date. Existing (date, item) rows are skipped.
	Save(ctx context.Context, date time.Time, results []forecast.Result) (SaveResult, error)

	// ListDates returns the most recent archived dates, latest first.
	ListDates(ctx context.Context) ([]DateSummary, error)

	// History returns the rows archived for date, highest prediction first.
	History(ctx context.Context, date time.Time) ([]Entry, error)
}

// Results strips archive metadata from entries.
func Results(entries []Entry) []forecast.Result {
	out := make([]forecast.Result, len(entries))
	for i := range entries {
		out[i] = entries[i].Result
	}
	return out
}
