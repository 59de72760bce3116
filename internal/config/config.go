// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package config loads Kitchencast configuration.
//
// Values are layered with koanf, lowest priority first:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file (CONFIG_PATH, or config.yaml in the working directory)
//  3. Environment variables listed in envMappings
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"time"
)

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
	Forecast ForecastConfig `koanf:"forecast"`
	Accuracy AccuracyConfig `koanf:"accuracy"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Alerts   AlertsConfig   `koanf:"alerts"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = NumCPU
}

// LoggingConfig controls the zerolog setup.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ForecastConfig parameterizes the forecast engine and its booster.
//
// The defaults reproduce the production behavior: a 60-day lookback, top 15
// items, the heuristic below 15 usable rows, and a 600-round booster with
// learning rate 0.05.
type ForecastConfig struct {
	LookbackDays     int     `koanf:"lookback_days"`
	TopN             int     `koanf:"top_n"`
	MinHistoryPoints int     `koanf:"min_history_points"`
	Workers          int     `koanf:"workers"` // 0 = NumCPU
	IncreaseRatio    float64 `koanf:"increase_ratio"`
	ReduceRatio      float64 `koanf:"reduce_ratio"`

	Trees           int     `koanf:"trees"`
	LearningRate    float64 `koanf:"learning_rate"`
	MaxLeaves       int     `koanf:"max_leaves"`
	RowSubsample    float64 `koanf:"row_subsample"`
	ColSubsample    float64 `koanf:"col_subsample"`
	Lambda          float64 `koanf:"lambda"`
	MinChildSamples int     `koanf:"min_child_samples"`
	Seed            int64   `koanf:"seed"`
}

// AccuracyConfig controls the accuracy report.
type AccuracyConfig struct {
	TopN int `koanf:"top_n"`
}

// CacheConfig controls the optional prediction cache. When disabled every
// forecast retrains every model.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Path    string        `koanf:"path"` // empty = in-memory
	TTL     time.Duration `koanf:"ttl"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// AlertsConfig holds alert thresholds.
type AlertsConfig struct {
	// WasteCostDangerThreshold is the estimated waste cost above which the
	// cost alert is raised as "danger" instead of "info".
	// Default: 200
	WasteCostDangerThreshold float64 `koanf:"waste_cost_danger_threshold"`
}

// Load reads configuration from defaults, an optional file, and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
