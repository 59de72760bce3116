// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/metrics"
)

// ItemSales is an item's all-time quantity sold.
type ItemSales struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
}

// RevenuePoint is the summed transaction total for one period. Period is
// YYYY-MM-DD for daily points and YYYY-MM for monthly points.
type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// TopItem returns the item with the largest total quantity sold, or nil
// when the ledger is empty. Ties go to the alphabetically first name.
func (db *DB) TopItem(ctx context.Context) (*ItemSales, error) {
	start := time.Now()
	var top ItemSales
	err := db.conn.QueryRowContext(ctx, `
		SELECT item_name, SUM(quantity) AS qty
		FROM transactions
		GROUP BY item_name
		ORDER BY qty DESC, item_name
		LIMIT 1
	`).Scan(&top.ItemName, &top.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("select", "transactions", time.Since(start), nil)
		return nil, nil
	}
	metrics.RecordDBQuery("select", "transactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query top item: %w", err)
	}
	return &top, nil
}

// DailyRevenue returns SUM(total) per day for from <= day <= to. Days
// without sales are omitted.
func (db *DB) DailyRevenue(ctx context.Context, from, to time.Time) ([]RevenuePoint, error) {
	return db.revenue(ctx, `
		SELECT strftime(day, '%Y-%m-%d') AS period, SUM(total)
		FROM transactions
		WHERE day BETWEEN CAST(? AS DATE) AND CAST(? AS DATE)
		GROUP BY period
		ORDER BY period
	`, forecast.Day(from).Format(forecast.DateLayout), forecast.Day(to).Format(forecast.DateLayout))
}

// MonthlyRevenue returns SUM(total) per calendar month over the whole ledger.
func (db *DB) MonthlyRevenue(ctx context.Context) ([]RevenuePoint, error) {
	return db.revenue(ctx, `
		SELECT strftime(day, '%Y-%m') AS period, SUM(total)
		FROM transactions
		GROUP BY period
		ORDER BY period
	`)
}

func (db *DB) revenue(ctx context.Context, query string, args ...interface{}) ([]RevenuePoint, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("select", "transactions", time.Since(start), err)
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]RevenuePoint, 0)
	for rows.Next() {
		var (
			p   RevenuePoint
			sum float64
		)
		if err := rows.Scan(&p.Period, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		p.Revenue = decimal.NewFromFloat(sum).Round(2).InexactFloat64()
		out = append(out, p)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "transactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate revenue: %w", err)
	}
	return out, nil
}
