// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/metrics"
)

var _ forecast.DataSource = (*DB)(nil)

// Transaction is one ledger line.
type Transaction struct {
	ID       int64     `json:"id"`
	ItemName string    `json:"item_name"`
	Quantity float64   `json:"quantity"`
	Total    float64   `json:"total"`
	Day      time.Time `json:"day"`
}

// InsertTransaction appends a sale to the ledger and returns its ID.
// A zero Day records the sale on the current UTC day.
func (db *DB) InsertTransaction(ctx context.Context, tx *Transaction) (int64, error) {
	start := time.Now()
	day := tx.Day
	if day.IsZero() {
		day = time.Now().UTC()
	}
	day = forecast.Day(day)

	var id int64
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO transactions (item_name, quantity, total, day)
		VALUES (?, ?, ?, CAST(? AS DATE))
		RETURNING id
	`, tx.ItemName, tx.Quantity, tx.Total, day.Format(forecast.DateLayout)).Scan(&id)
	metrics.RecordDBQuery("insert", "transactions", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	tx.ID = id
	tx.Day = day
	return id, nil
}

// DailyTotals returns SUM(quantity) per item and day for from <= day <= to,
// ordered by item then day.
func (db *DB) DailyTotals(ctx context.Context, from, to time.Time) ([]forecast.DailyTotal, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT item_name, day, SUM(quantity)
		FROM transactions
		WHERE day BETWEEN CAST(? AS DATE) AND CAST(? AS DATE)
		GROUP BY item_name, day
		ORDER BY item_name, day
	`, forecast.Day(from).Format(forecast.DateLayout), forecast.Day(to).Format(forecast.DateLayout))
	if err != nil {
		metrics.RecordDBQuery("select", "transactions", time.Since(start), err)
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []forecast.DailyTotal
	for rows.Next() {
		var t forecast.DailyTotal
		if err := rows.Scan(&t.ItemName, &t.Day, &t.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		t.Day = forecast.Day(t.Day)
		out = append(out, t)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "transactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate daily totals: %w", err)
	}
	return out, nil
}

// TotalsForDay returns SUM(quantity) per item for a single day.
func (db *DB) TotalsForDay(ctx context.Context, day time.Time) ([]forecast.ItemTotal, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT item_name, SUM(quantity)
		FROM transactions
		WHERE day = CAST(? AS DATE)
		GROUP BY item_name
		ORDER BY item_name
	`, forecast.Day(day).Format(forecast.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query totals for day: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []forecast.ItemTotal
	for rows.Next() {
		var t forecast.ItemTotal
		if err := rows.Scan(&t.ItemName, &t.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item total: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item totals: %w", err)
	}
	return out, nil
}
