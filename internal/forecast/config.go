// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"fmt"

	"github.com/tomtom215/kitchencast/internal/forecast/boost"
)

// Config holds engine settings. Pass it to NewEngine; the engine keeps its
// own copy.
type Config struct {
	// LookbackDays is the ledger window ending at the as-of day.
	// Default: 60.
	LookbackDays int `json:"lookback_days"`

	// TopN truncates the ranked forecast.
	// Default: 15.
	TopN int `json:"top_n"`

	// MinHistoryPoints is the usable-row count needed to train a model.
	// Below it the baseline is returned with ConfidenceHeuristic.
	// Default: 15.
	MinHistoryPoints int `json:"min_history_points"`

	// Workers bounds per-item parallelism. 0 means runtime.NumCPU.
	Workers int `json:"workers"`

	// IncreaseRatio and ReduceRatio are the classification bands.
	// Defaults: 1.15 and 0.85.
	IncreaseRatio float64 `json:"increase_ratio"`
	ReduceRatio   float64 `json:"reduce_ratio"`

	// Booster configures per-item model training.
	Booster boost.Config `json:"booster"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		LookbackDays:     60,
		TopN:             15,
		MinHistoryPoints: 15,
		Workers:          0,
		IncreaseRatio:    DefaultIncreaseRatio,
		ReduceRatio:      DefaultReduceRatio,
		Booster:          boost.DefaultConfig(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.LookbackDays < 1 {
		return fmt.Errorf("lookback_days must be positive, got %d", c.LookbackDays)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.MinHistoryPoints < 1 {
		return fmt.Errorf("min_history_points must be positive, got %d", c.MinHistoryPoints)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.IncreaseRatio < 1 || c.ReduceRatio <= 0 || c.ReduceRatio > 1 {
		return fmt.Errorf("classification bands must satisfy reduce <= 1 <= increase, got %f/%f",
			c.ReduceRatio, c.IncreaseRatio)
	}
	if err := c.Booster.Validate(); err != nil {
		return fmt.Errorf("booster: %w", err)
	}
	return nil
}
