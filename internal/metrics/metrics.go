// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package metrics registers the Prometheus collectors exported on /metrics.
//
// Collectors are package-level and registered with promauto at init, so
// callers only use the Record* helpers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of failed DuckDB queries",
		},
		[]string{"operation", "table"},
	)

	// Forecast metrics
	ForecastDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecast_duration_seconds",
			Help:    "Wall time of a full forecast run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ForecastItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_items_total",
			Help: "Items forecast, by prediction branch",
		},
		[]string{"branch"}, // "model", "heuristic"
	)

	ModelTrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecast_model_train_duration_seconds",
			Help:    "Time to train one per-item booster",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	PredictionCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_cache_total",
			Help: "Prediction cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// Archive metrics
	ArchiveRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archive_rows_total",
			Help: "Forecast snapshot rows by insert outcome",
		},
		[]string{"outcome"}, // "saved", "skipped"
	)

	// Ingestion bus metrics
	IngestEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_events_published_total",
			Help: "Ledger ingestion events published to the bus",
		},
		[]string{"outcome"}, // "ok", "error", "breaker_open"
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_cache_invalidations_total",
			Help: "Cached predictions dropped after ledger ingestion",
		},
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDBQuery records a query's latency and whether it failed.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordForecast records a finished forecast run.
func RecordForecast(duration time.Duration, modelItems, heuristicItems int) {
	ForecastDuration.Observe(duration.Seconds())
	ForecastItemsTotal.WithLabelValues("model").Add(float64(modelItems))
	ForecastItemsTotal.WithLabelValues("heuristic").Add(float64(heuristicItems))
}

// RecordModelTrain records one booster fit.
func RecordModelTrain(duration time.Duration) {
	ModelTrainDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a prediction cache lookup.
func RecordCacheLookup(result string) {
	PredictionCacheTotal.WithLabelValues(result).Inc()
}

// RecordArchiveSave records the outcome counts of one snapshot save.
func RecordArchiveSave(saved, skipped int) {
	ArchiveRowsTotal.WithLabelValues("saved").Add(float64(saved))
	ArchiveRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordIngestPublish records one bus publish attempt.
func RecordIngestPublish(outcome string) {
	IngestEventsPublished.WithLabelValues(outcome).Inc()
}

// RecordCacheInvalidation counts dropped cache entries.
func RecordCacheInvalidation(n int) {
	CacheInvalidations.Add(float64(n))
}
