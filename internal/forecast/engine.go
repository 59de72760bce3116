// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kitchencast/internal/forecast/boost"
	"github.com/tomtom215/kitchencast/internal/metrics"
)

// Engine computes next-day forecasts. It holds configuration and
// collaborators only; every Compute call starts from fresh reads.
type Engine struct {
	config Config
	source DataSource
	cache  PredictionCache
	logger zerolog.Logger
}

// NewEngine creates an engine. The configuration is validated and copied.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg Config, source DataSource, logger zerolog.Logger) (*Engine, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forecast config: %w", err)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{
		config: cfg,
		source: source,
		logger: logger.With().Str("component", "forecast").Logger(),
	}, nil
}

// SetCache enables cross-run reuse of model predictions. Passing nil
// disables it again.
func (e *Engine) SetCache(c PredictionCache) {
	e.cache = c
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compute forecasts the day after asOf from the LookbackDays window ending
// at asOf. The result holds at most TopN items, ordered by predicted
// quantity descending with ties in item-name order.
func (e *Engine) Compute(ctx context.Context, asOf time.Time) (*Forecast, error) {
	start := time.Now()
	asOf = Day(asOf)
	target := asOf.AddDate(0, 0, 1)
	from := asOf.AddDate(0, 0, -e.config.LookbackDays)

	rows, err := e.source.DailyTotals(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("read ledger window: %w", err)
	}
	events, err := e.source.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}

	fc := &Forecast{Date: target.Format(DateLayout), Forecasts: []Result{}}
	series := Aggregate(rows)
	if len(series) == 0 {
		e.logger.Debug().Str("date", fc.Date).Msg("no transactions in lookback window")
		return fc, nil
	}

	results, err := e.PredictAll(ctx, series, BuildCalendar(events), target)
	if err != nil {
		return nil, err
	}

	var model, heuristic int
	for i := range results {
		if results[i].Branch == BranchModel {
			model++
		} else {
			heuristic++
		}
	}
	metrics.RecordForecast(time.Since(start), model, heuristic)

	Rank(results)
	if len(results) > e.config.TopN {
		results = results[:e.config.TopN]
	}
	fc.Forecasts = results

	e.logger.Info().
		Str("date", fc.Date).
		Int("items", len(series)).
		Int("model_items", model).
		Int("heuristic_items", heuristic).
		Dur("duration", time.Since(start)).
		Msg("forecast computed")
	return fc, nil
}

// PredictAll forecasts every series for target on the worker pool. The
// returned slice is index-aligned with series.
func (e *Engine) PredictAll(ctx context.Context, series []DailySeries, cal Calendar, target time.Time) ([]Result, error) {
	results := make([]Result, len(series))
	errs := make([]error, len(series))

	workers := e.config.Workers
	if workers > len(series) {
		workers = len(series)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = e.predict(ctx, series[i], cal, target)
			}
		}()
	}

feed:
	for i := range series {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("forecast %s: %w", series[i].ItemName, err)
		}
	}
	return results, nil
}

// predict produces one item's Result. Short histories return the baseline;
// otherwise a booster is trained on the item's feature rows.
func (e *Engine) predict(ctx context.Context, s DailySeries, cal Calendar, target time.Time) (Result, error) {
	rows := BuildFeatures(s, cal)
	baseline := Baseline(s.Quantities)

	res := Result{
		ItemName:      s.ItemName,
		HistoryPoints: len(rows),
	}

	var predicted float64
	if len(rows) < e.config.MinHistoryPoints {
		predicted = baseline
		res.Confidence = ConfidenceHeuristic
		res.Branch = BranchHeuristic
	} else {
		p, err := e.modelPrediction(ctx, s, rows, cal, baseline, target)
		if err != nil {
			return Result{}, err
		}
		predicted = math.Max(0, p)
		res.Confidence = ConfidenceTier(len(rows))
		res.Branch = BranchModel
	}

	res.Suggestion, res.Tag = Classify(predicted, baseline, e.config.IncreaseRatio, e.config.ReduceRatio)
	res.AvgLast7Qty = round2(baseline)
	res.PredictedQty = round2(predicted)
	return res, nil
}

func (e *Engine) modelPrediction(ctx context.Context, s DailySeries, rows []FeatureRow, cal Calendar, baseline float64, target time.Time) (float64, error) {
	var key string
	if e.cache != nil {
		key = CacheKey(s, cal, target, e.config.Booster)
		p, ok, err := e.cache.Get(key)
		switch {
		case err != nil:
			metrics.RecordCacheLookup("error")
			e.logger.Warn().Err(err).Str("item", s.ItemName).Msg("prediction cache read failed")
		case ok:
			metrics.RecordCacheLookup("hit")
			return p, nil
		default:
			metrics.RecordCacheLookup("miss")
		}
	}

	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		X[i] = r.Vector()
		y[i] = r.Quantity
	}

	started := time.Now()
	model, err := boost.Train(ctx, X, y, e.config.Booster)
	if err != nil {
		return 0, fmt.Errorf("train model: %w", err)
	}
	metrics.RecordModelTrain(time.Since(started))

	p := model.Predict(NextDayVector(s, baseline, cal, target))

	if e.cache != nil {
		if err := e.cache.Put(key, p); err != nil {
			e.logger.Warn().Err(err).Str("item", s.ItemName).Msg("prediction cache write failed")
		}
	}
	return p, nil
}

// Rank stably sorts results by predicted quantity, highest first.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PredictedQty > results[j].PredictedQty
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
