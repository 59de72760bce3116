// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

/*
database_schema.go - Operational Schema

Tables:
  - transactions: append-only sales ledger, one row per sale line
  - events: business calendar, unique per (event_date, event_type)
  - menu_items: selling and cost price per item, keyed by name

The forecast archive lives in the same file but is owned by the archive
package.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS transactions_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT PRIMARY KEY DEFAULT nextval('transactions_id_seq'),
			item_name TEXT NOT NULL,
			quantity DOUBLE NOT NULL,
			total DOUBLE NOT NULL DEFAULT 0,
			day DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE SEQUENCE IF NOT EXISTS events_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS events (
			id BIGINT PRIMARY KEY DEFAULT nextval('events_id_seq'),
			event_date DATE NOT NULL,
			event_type TEXT NOT NULL,
			title TEXT NOT NULL,
			impact DOUBLE NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (event_date, event_type)
		)`,

		`CREATE TABLE IF NOT EXISTS menu_items (
			name TEXT PRIMARY KEY,
			price DOUBLE NOT NULL DEFAULT 0,
			cost_price DOUBLE NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

// createIndexes adds the ledger index used by every window scan.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transactions_day ON transactions(day)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_item_day ON transactions(item_name, day)`,
	}
	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
