// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package boost implements gradient-boosted regression trees with squared
// error loss.
//
// Trees are grown leaf-wise: at every step the leaf whose best split gives
// the largest loss reduction is split, until MaxLeaves is reached or no split
// improves the objective. Split gain and leaf values use the second-order
// (Newton) formulas with L2 regularization on leaf weights.
//
// # Determinism
//
// Row and column subsampling draw from a math/rand source seeded with
// Config.Seed, and every reduction runs in a fixed order. Training twice on
// the same data with the same Config yields bit-identical predictions.
//
// # Usage
//
//	model, err := boost.Train(ctx, X, y, boost.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	yhat := model.Predict(x)
package boost

import "fmt"

// Config holds booster hyperparameters.
type Config struct {
	// Rounds is the number of trees.
	// Default: 600.
	Rounds int `json:"rounds"`

	// LearningRate shrinks each tree's contribution.
	// Default: 0.05.
	LearningRate float64 `json:"learning_rate"`

	// MaxLeaves bounds the leaf count of a single tree.
	// Default: 31.
	MaxLeaves int `json:"max_leaves"`

	// RowSubsample is the fraction of rows drawn for each tree.
	// Default: 0.9.
	RowSubsample float64 `json:"row_subsample"`

	// ColSubsample is the fraction of features considered by each tree.
	// Default: 0.9.
	ColSubsample float64 `json:"col_subsample"`

	// Lambda is the L2 penalty on leaf weights.
	// Default: 1.0.
	Lambda float64 `json:"lambda"`

	// MinChildSamples is the minimum number of rows in a leaf.
	// Default: 20.
	MinChildSamples int `json:"min_child_samples"`

	// Seed drives subsampling.
	// Default: 42.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the production hyperparameters.
func DefaultConfig() Config {
	return Config{
		Rounds:          600,
		LearningRate:    0.05,
		MaxLeaves:       31,
		RowSubsample:    0.9,
		ColSubsample:    0.9,
		Lambda:          1.0,
		MinChildSamples: 20,
		Seed:            42,
	}
}

// Validate checks the hyperparameters.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning_rate must be in (0, 1], got %f", c.LearningRate)
	}
	if c.MaxLeaves < 2 {
		return fmt.Errorf("max_leaves must be at least 2, got %d", c.MaxLeaves)
	}
	if c.RowSubsample <= 0 || c.RowSubsample > 1 {
		return fmt.Errorf("row_subsample must be in (0, 1], got %f", c.RowSubsample)
	}
	if c.ColSubsample <= 0 || c.ColSubsample > 1 {
		return fmt.Errorf("col_subsample must be in (0, 1], got %f", c.ColSubsample)
	}
	if c.Lambda < 0 {
		return fmt.Errorf("lambda must be non-negative, got %f", c.Lambda)
	}
	if c.MinChildSamples < 1 {
		return fmt.Errorf("min_child_samples must be positive, got %d", c.MinChildSamples)
	}
	return nil
}
