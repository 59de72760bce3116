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

	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/metrics"
)

// RecentEventsLimit caps ListEvents.
const RecentEventsLimit = 120

const eventColumns = `id, strftime(event_date, '%Y-%m-%d'), event_type, title, impact, created_at`

// Events returns the whole calendar in ID order.
func (db *DB) Events(ctx context.Context) ([]forecast.Event, error) {
	return db.queryEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
}

// ListEvents returns the most recent events, latest date first.
func (db *DB) ListEvents(ctx context.Context) ([]forecast.Event, error) {
	return db.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY event_date DESC, id DESC LIMIT ?`,
		RecentEventsLimit)
}

func (db *DB) queryEvents(ctx context.Context, query string, args ...any) ([]forecast.Event, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("select", "events", time.Since(start), err)
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer closeWithLog(rows, "rows")

	events := []forecast.Event{}
	for rows.Next() {
		var e forecast.Event
		var created sql.NullTime
		if err := rows.Scan(&e.ID, &e.Date, &e.Type, &e.Title, &e.Impact, &created); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if created.Valid {
			e.CreatedAt = created.Time
		}
		events = append(events, e)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "events", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// AddEvent inserts a calendar event and fills in its ID. A second event
// with the same date and type returns ErrEventExists.
func (db *DB) AddEvent(ctx context.Context, e *forecast.Event) error {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO events (event_date, event_type, title, impact)
		VALUES (CAST(? AS DATE), ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, e.Date, e.Type, e.Title, e.Impact)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrEventExists
	}

	var created sql.NullTime
	err = db.conn.QueryRowContext(ctx, `
		SELECT id, created_at FROM events
		WHERE event_date = CAST(? AS DATE) AND event_type = ?
	`, e.Date, e.Type).Scan(&e.ID, &created)
	if err != nil {
		return fmt.Errorf("failed to read inserted event: %w", err)
	}
	if created.Valid {
		e.CreatedAt = created.Time
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (db *DB) DeleteEvent(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}
