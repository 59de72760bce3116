// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateForecast(); err != nil {
		return err
	}
	if c.Accuracy.TopN < 1 {
		return fmt.Errorf("accuracy.top_n must be at least 1, got %d", c.Accuracy.TopN)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs < 1 || c.Security.RateLimitWindow <= 0) {
		return fmt.Errorf("security rate limit must be positive, got %d per %v",
			c.Security.RateLimitReqs, c.Security.RateLimitWindow)
	}
	if c.Alerts.WasteCostDangerThreshold <= 0 {
		return fmt.Errorf("alerts.waste_cost_danger_threshold must be positive, got %f",
			c.Alerts.WasteCostDangerThreshold)
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateForecast() error {
	f := c.Forecast
	switch {
	case f.LookbackDays < 8:
		return fmt.Errorf("forecast.lookback_days must be at least 8, got %d", f.LookbackDays)
	case f.TopN < 1:
		return fmt.Errorf("forecast.top_n must be at least 1, got %d", f.TopN)
	case f.MinHistoryPoints < 1:
		return fmt.Errorf("forecast.min_history_points must be at least 1, got %d", f.MinHistoryPoints)
	case f.Workers < 0:
		return fmt.Errorf("forecast.workers must be non-negative, got %d", f.Workers)
	case f.IncreaseRatio < 1:
		return fmt.Errorf("forecast.increase_ratio must be >= 1, got %f", f.IncreaseRatio)
	case f.ReduceRatio <= 0 || f.ReduceRatio > 1:
		return fmt.Errorf("forecast.reduce_ratio must be in (0, 1], got %f", f.ReduceRatio)
	case f.Trees < 1:
		return fmt.Errorf("forecast.trees must be at least 1, got %d", f.Trees)
	case f.LearningRate <= 0 || f.LearningRate > 1:
		return fmt.Errorf("forecast.learning_rate must be in (0, 1], got %f", f.LearningRate)
	case f.MaxLeaves < 2:
		return fmt.Errorf("forecast.max_leaves must be at least 2, got %d", f.MaxLeaves)
	case f.RowSubsample <= 0 || f.RowSubsample > 1:
		return fmt.Errorf("forecast.row_subsample must be in (0, 1], got %f", f.RowSubsample)
	case f.ColSubsample <= 0 || f.ColSubsample > 1:
		return fmt.Errorf("forecast.col_subsample must be in (0, 1], got %f", f.ColSubsample)
	case f.Lambda < 0:
		return fmt.Errorf("forecast.lambda must be non-negative, got %f", f.Lambda)
	case f.MinChildSamples < 1:
		return fmt.Errorf("forecast.min_child_samples must be at least 1, got %d", f.MinChildSamples)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
