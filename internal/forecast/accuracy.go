// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultAccuracyTopN is how many of the worst items a Report lists.
const DefaultAccuracyTopN = 12

// Comparison is one item's predicted vs realized quantity.
type Comparison struct {
	ItemName     string     `json:"item_name"`
	PredictedQty float64    `json:"predicted_qty"`
	ActualQty    float64    `json:"actual_qty"`
	ErrorPercent float64    `json:"error_percent"`
	Confidence   int        `json:"confidence"`
	Suggestion   Suggestion `json:"suggestion"`
	Tag          Tag        `json:"tag"`
}

// Report summarizes how well a forecast matched a day's sales.
type Report struct {
	Date            string       `json:"date"`
	Source          string       `json:"source"` // "live" or "archive"
	AccuracyScore   float64      `json:"accuracy_score"`
	AvgErrorPercent float64      `json:"avg_error_percent"`
	ComparedItems   int          `json:"compared_items"`
	Items           []Comparison `json:"items"`
}

// Evaluator compares forecasts with realized ledger quantities.
type Evaluator struct {
	engine *Engine
	source DataSource
	topN   int
}

// NewEvaluator creates an evaluator that lists the topN worst items.
// topN <= 0 selects DefaultAccuracyTopN.
func NewEvaluator(engine *Engine, source DataSource, topN int) *Evaluator {
	if topN <= 0 {
		topN = DefaultAccuracyTopN
	}
	return &Evaluator{engine: engine, source: source, topN: topN}
}

// Evaluate scores the live forecast whose target is today. The forecast is
// recomputed as of the previous day, so today's own sales never feed the
// prediction they are judged against.
func (v *Evaluator) Evaluate(ctx context.Context, today time.Time) (*Report, error) {
	today = Day(today)
	fc, err := v.engine.Compute(ctx, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("compute live forecast: %w", err)
	}
	return v.compare(ctx, today, fc.Forecasts, "live")
}

// CompareSnapshot scores archived results for day. An empty snapshot
// returns ErrNoData.
func (v *Evaluator) CompareSnapshot(ctx context.Context, day time.Time, results []Result) (*Report, error) {
	if len(results) == 0 {
		return nil, ErrNoData
	}
	return v.compare(ctx, Day(day), results, "archive")
}

func (v *Evaluator) compare(ctx context.Context, day time.Time, results []Result, source string) (*Report, error) {
	totals, err := v.source.TotalsForDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("read realized totals: %w", err)
	}
	actual := make(map[string]float64, len(totals))
	for _, t := range totals {
		actual[t.ItemName] += t.Quantity
	}

	items := make([]Comparison, 0, len(results))
	errs := make([]float64, 0, len(results))
	for _, r := range results {
		a := actual[r.ItemName]
		pct := ErrorPercent(r.PredictedQty, a)
		errs = append(errs, pct)
		items = append(items, Comparison{
			ItemName:     r.ItemName,
			PredictedQty: round2(r.PredictedQty),
			ActualQty:    round2(a),
			ErrorPercent: round2(pct),
			Confidence:   r.Confidence,
			Suggestion:   r.Suggestion,
			Tag:          r.Tag,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ErrorPercent > items[j].ErrorPercent
	})
	if len(items) > v.topN {
		items = items[:v.topN]
	}

	score, avg := Score(errs)
	return &Report{
		Date:            day.Format(DateLayout),
		Source:          source,
		AccuracyScore:   score,
		AvgErrorPercent: avg,
		ComparedItems:   len(errs),
		Items:           items,
	}, nil
}

// ErrorPercent is |predicted-actual| relative to predicted, in percent.
// Both non-positive is a perfect 0; a zero prediction against positive
// sales is a full 100.
func ErrorPercent(predicted, actual float64) float64 {
	switch {
	case predicted <= 0 && actual <= 0:
		return 0
	case predicted > 0:
		return math.Abs(predicted-actual) / predicted * 100
	default:
		return 100
	}
}

// Score returns the accuracy score max(0, 100 - mean) and the mean error,
// both rounded to 2 decimals. No errors scores 100.
func Score(errorPercents []float64) (score, avgError float64) {
	if len(errorPercents) == 0 {
		return 100, 0
	}
	var sum float64
	for _, e := range errorPercents {
		sum += e
	}
	avg := sum / float64(len(errorPercents))
	return math.Max(0, round2(100-avg)), round2(avg)
}
