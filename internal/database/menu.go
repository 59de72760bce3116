// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MenuItem is a sellable item with its selling and cost price.
type MenuItem struct {
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CostPrice float64   `json:"cost_price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertMenuItem inserts or replaces the prices of a menu item.
func (db *DB) UpsertMenuItem(ctx context.Context, item *MenuItem) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO menu_items (name, price, cost_price, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			price = EXCLUDED.price,
			cost_price = EXCLUDED.cost_price,
			updated_at = EXCLUDED.updated_at
	`, item.Name, item.Price, item.CostPrice)
	if err != nil {
		return fmt.Errorf("failed to upsert menu item %s: %w", item.Name, err)
	}
	return nil
}

// ListMenu returns every menu item ordered by name.
func (db *DB) ListMenu(ctx context.Context) ([]MenuItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT name, price, cost_price, updated_at FROM menu_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer closeWithLog(rows, "rows")

	items := []MenuItem{}
	for rows.Next() {
		var m MenuItem
		var updated sql.NullTime
		if err := rows.Scan(&m.Name, &m.Price, &m.CostPrice, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		if updated.Valid {
			m.UpdatedAt = updated.Time
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu: %w", err)
	}
	return items, nil
}

// MenuCosts maps item name to cost price.
func (db *DB) MenuCosts(ctx context.Context) (map[string]float64, error) {
	items, err := db.ListMenu(ctx)
	if err != nil {
		return nil, err
	}
	costs := make(map[string]float64, len(items))
	for _, m := range items {
		costs[m.Name] = m.CostPrice
	}
	return costs, nil
}
