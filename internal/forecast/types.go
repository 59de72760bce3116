// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"context"
	"time"
)

// DateLayout is the wire and storage format of calendar days.
const DateLayout = "2006-01-02"

// DailyTotal is one ledger aggregate: SUM(quantity) for an item on a day.
type DailyTotal struct {
	ItemName string
	Day      time.Time
	Quantity float64
}

// ItemTotal is an item's summed quantity for a single day.
type ItemTotal struct {
	ItemName string
	Quantity float64
}

// Event is a business calendar entry. Impact is a signed demand
// perturbation; several events with different types may share a date.
type Event struct {
	ID        int64     `json:"id"`
	Date      string    `json:"event_date"`
	Type      string    `json:"event_type"`
	Title     string    `json:"title"`
	Impact    float64   `json:"impact"`
	CreatedAt time.Time `json:"created_at"`
}

// DataSource supplies the ledger and calendar reads the engine needs.
type DataSource interface {
	// DailyTotals returns per-item per-day sums for from <= day <= to.
	DailyTotals(ctx context.Context, from, to time.Time) ([]DailyTotal, error)

	// TotalsForDay returns per-item sums for a single day.
	TotalsForDay(ctx context.Context, day time.Time) ([]ItemTotal, error)

	// Events returns every calendar event.
	Events(ctx context.Context) ([]Event, error)
}

// Suggestion is the production recommendation for an item.
type Suggestion string

// Suggestions.
const (
	SuggestIncrease Suggestion = "Increase"
	SuggestReduce   Suggestion = "Reduce"
	SuggestMaintain Suggestion = "Maintain"
)

// Tag labels the demand outlook behind a Suggestion.
type Tag string

// Tags.
const (
	TagHighDemand         Tag = "HIGH_DEMAND"
	TagOverproductionRisk Tag = "OVERPRODUCTION_RISK"
	TagStable             Tag = "STABLE"
)

// Branch records which prediction path produced a Result.
type Branch string

// Branches.
const (
	// BranchHeuristic means history was too short to train; the baseline was used.
	BranchHeuristic Branch = "heuristic"
	// BranchModel means a boosted model was trained and queried.
	BranchModel Branch = "model"
)

// Result is the forecast for one item. It is a value and never mutated.
type Result struct {
	ItemName      string     `json:"item_name"`
	AvgLast7Qty   float64    `json:"avg_last7_qty"`
	PredictedQty  float64    `json:"predicted_qty"`
	Confidence    int        `json:"confidence"`
	Suggestion    Suggestion `json:"suggestion"`
	Tag           Tag        `json:"tag"`
	HistoryPoints int        `json:"history_points"`
	Branch        Branch     `json:"branch,omitempty"`
}

// Forecast is the ranked result set for one target date.
type Forecast struct {
	Date      string   `json:"date"`
	Forecasts []Result `json:"forecasts"`
}

// Empty reports whether the ledger window held no transactions.
func (f *Forecast) Empty() bool {
	return len(f.Forecasts) == 0
}

// Day truncates t to a UTC calendar day, keeping t's own year, month and day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a UTC day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
