// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/logging"
	"github.com/tomtom215/kitchencast/internal/metrics"
)

var _ Store = (*DuckDBStore)(nil)

// DuckDBStore implements Store on the shared DuckDB connection.
type DuckDBStore struct {
	db *sql.DB
}

// NewDuckDBStore creates a DuckDB-backed archive. Call CreateTable before use.
func NewDuckDBStore(db *sql.DB) *DuckDBStore {
	return &DuckDBStore{db: db}
}

// CreateTable creates the forecast_history table if it doesn't exist.
func (s *DuckDBStore) CreateTable(ctx context.Context) error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS forecast_history_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS forecast_history (
			id BIGINT PRIMARY KEY DEFAULT nextval('forecast_history_id_seq'),
			forecast_date DATE NOT NULL,
			item_name TEXT NOT NULL,
			avg_last7_qty DOUBLE NOT NULL,
			predicted_qty DOUBLE NOT NULL,
			confidence INTEGER NOT NULL,
			suggestion TEXT NOT NULL,
			tag TEXT NOT NULL,
			history_points INTEGER NOT NULL,
			branch TEXT,
			generated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (forecast_date, item_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_forecast_history_date ON forecast_history(forecast_date)`,
	}
	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create forecast_history table: %w", err)
		}
	}
	logging.Info().Msg("Forecast history table created/verified")
	return nil
}

// Save inserts each result as its own statement. A row whose (date, item)
// already exists is counted as skipped; any other failure aborts the batch
// and returns the counts so far with the error.
func (s *DuckDBStore) Save(ctx context.Context, date time.Time, results []forecast.Result) (SaveResult, error) {
	start := time.Now()
	day := forecast.Day(date).Format(forecast.DateLayout)
	generatedAt := time.Now().UTC()

	var res SaveResult
	for i := range results {
		r := &results[i]
		saved, err := s.insert(ctx, day, generatedAt, r)
		if err != nil {
			metrics.RecordDBQuery("insert", "forecast_history", time.Since(start), err)
			metrics.RecordArchiveSave(res.Saved, res.Skipped)
			return res, fmt.Errorf("failed to archive %s for %s: %w", r.ItemName, day, err)
		}
		if saved {
			res.Saved++
		} else {
			res.Skipped++
		}
	}

	metrics.RecordDBQuery("insert", "forecast_history", time.Since(start), nil)
	metrics.RecordArchiveSave(res.Saved, res.Skipped)
	logging.Info().
		Str("forecast_date", day).
		Int("saved", res.Saved).
		Int("skipped", res.Skipped).
		Msg("Forecast archived")
	return res, nil
}

// insert reports whether a new row was written.
func (s *DuckDBStore) insert(ctx context.Context, day string, generatedAt time.Time, r *forecast.Result) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM forecast_history
		WHERE forecast_date = CAST(? AS DATE) AND item_name = ?
	`, day, r.ItemName).Scan(&exists)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, err
	}

	// ON CONFLICT covers a concurrent Save racing past the check above.
	out, err := s.db.ExecContext(ctx, `
		INSERT INTO forecast_history (
			forecast_date, item_name, avg_last7_qty, predicted_qty, confidence,
			suggestion, tag, history_points, branch, generated_at
		) VALUES (CAST(? AS DATE), ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, day, r.ItemName, r.AvgLast7Qty, r.PredictedQty, r.Confidence,
		string(r.Suggestion), string(r.Tag), r.HistoryPoints, string(r.Branch), generatedAt)
	if err != nil {
		return false, err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListDates returns up to RecentDatesLimit archived dates, latest first.
func (s *DuckDBStore) ListDates(ctx context.Context) ([]DateSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime(forecast_date, '%Y-%m-%d'), COUNT(*), MAX(generated_at)
		FROM forecast_history
		GROUP BY forecast_date
		ORDER BY forecast_date DESC
		LIMIT ?
	`, RecentDatesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecast dates: %w", err)
	}
	defer rows.Close()

	dates := []DateSummary{}
	for rows.Next() {
		var d DateSummary
		if err := rows.Scan(&d.ForecastDate, &d.ItemCount, &d.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan forecast date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forecast dates: %w", err)
	}
	return dates, nil
}

// History returns the rows archived for date ordered by predicted quantity
// descending, then insertion order.
func (s *DuckDBStore) History(ctx context.Context, date time.Time) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, strftime(forecast_date, '%Y-%m-%d'), generated_at,
			item_name, avg_last7_qty, predicted_qty, confidence,
			suggestion, tag, history_points, COALESCE(branch, '')
		FROM forecast_history
		WHERE forecast_date = CAST(? AS DATE)
		ORDER BY predicted_qty DESC, id ASC
	`, forecast.Day(date).Format(forecast.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query forecast history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var suggestion, tag, branch string
		if err := rows.Scan(&e.ID, &e.ForecastDate, &e.GeneratedAt,
			&e.ItemName, &e.AvgLast7Qty, &e.PredictedQty, &e.Confidence,
			&suggestion, &tag, &e.HistoryPoints, &branch); err != nil {
			return nil, fmt.Errorf("failed to scan forecast history: %w", err)
		}
		e.Suggestion = forecast.Suggestion(suggestion)
		e.Tag = forecast.Tag(tag)
		e.Branch = forecast.Branch(branch)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forecast history: %w", err)
	}
	return entries, nil
}
