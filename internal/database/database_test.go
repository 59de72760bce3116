// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/kitchencast/internal/config"
)

// testDBSemaphore serializes DuckDB tests. Concurrent CGO connections from
// parallel tests can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database. The semaphore is held
// for the whole test and released by t.Cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return db
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewCreatesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, table := range []string{"transactions", "events", "menu_items"} {
		var name string
		err := db.Conn().QueryRowContext(ctx,
			"SELECT table_name FROM information_schema.tables WHERE table_name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestNewOnDiskReopens(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "kc.duckdb")
	cfg := &config.DatabaseConfig{Path: path, Threads: 1}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := db.InsertTransaction(context.Background(), &Transaction{ItemName: "Tea", Quantity: 2, Day: day("2026-01-01")}); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = New(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	totals, err := db.TotalsForDay(context.Background(), day("2026-01-01"))
	if err != nil || len(totals) != 1 || totals[0].Quantity != 2 {
		t.Errorf("after reopen totals = %+v, err %v", totals, err)
	}
}
