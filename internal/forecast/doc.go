// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package forecast predicts next-day demand per menu item.
//
// # Pipeline
//
// A forecast run reads the trailing ledger window and the event calendar
// from a DataSource, then per item:
//
//  1. Aggregate fills the item's daily totals into a gap-free DailySeries
//  2. BuildFeatures turns the series into lag, rolling-mean and calendar rows
//  3. The engine predicts tomorrow, either with the 7-day baseline (short
//     history) or with a gradient-boosted tree model trained on the rows
//  4. Classify maps prediction vs baseline to Increase, Reduce or Maintain
//
// Items are processed on a bounded worker pool. Results land in
// index-addressed slots and are stably sorted by predicted quantity, so the
// output never depends on goroutine scheduling.
//
// # Usage
//
//	engine, err := forecast.NewEngine(forecast.DefaultConfig(), db, logger)
//	if err != nil {
//	    return err
//	}
//	fc, err := engine.Compute(ctx, time.Now())
//
// # Degradation
//
// The engine never fails because data is sparse. An empty window yields an
// empty forecast, and short histories take the baseline branch
// (Result.Branch == BranchHeuristic). Errors are reserved for storage
// failures and cancellation.
package forecast
