// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/kitchencast/internal/forecast"
)

func setupTestStore(t *testing.T) (*DuckDBStore, *sql.DB) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open in-memory DuckDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewDuckDBStore(db)
	if err := store.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return store, db
}

func day(s string) time.Time {
	d, err := forecast.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleResults() []forecast.Result {
	return []forecast.Result{
		{ItemName: "Samosa", AvgLast7Qty: 18, PredictedQty: 23, Confidence: 92,
			Suggestion: forecast.SuggestIncrease, Tag: forecast.TagHighDemand, HistoryPoints: 53, Branch: forecast.BranchModel},
		{ItemName: "Tea", AvgLast7Qty: 10, PredictedQty: 10, Confidence: 55,
			Suggestion: forecast.SuggestMaintain, Tag: forecast.TagStable, HistoryPoints: 13, Branch: forecast.BranchHeuristic},
		{ItemName: "Poha", AvgLast7Qty: 12, PredictedQty: 8.5, Confidence: 75,
			Suggestion: forecast.SuggestReduce, Tag: forecast.TagOverproductionRisk, HistoryPoints: 24, Branch: forecast.BranchModel},
	}
}

func TestDuckDBStore_CreateTableIdempotent(t *testing.T) {
	store, db := setupTestStore(t)
	if err := store.CreateTable(context.Background()); err != nil {
		t.Fatalf("second CreateTable: %v", err)
	}
	var name string
	err := db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = 'forecast_history'").Scan(&name)
	if err != nil {
		t.Fatalf("Table forecast_history does not exist: %v", err)
	}
}

func TestDuckDBStore_SaveIdempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	results := sampleResults()

	first, err := store.Save(ctx, day("2026-03-02"), results)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first != (SaveResult{Saved: 3, Skipped: 0}) {
		t.Errorf("first save = %+v, want 3/0", first)
	}

	// Changed values for an archived item must not overwrite it.
	again := sampleResults()
	again[0].PredictedQty = 999
	second, err := store.Save(ctx, day("2026-03-02"), again)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second != (SaveResult{Saved: 0, Skipped: 3}) {
		t.Errorf("second save = %+v, want 0/3", second)
	}

	entries, err := store.History(ctx, day("2026-03-02"))
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ItemName != "Samosa" || entries[0].PredictedQty != 23 {
		t.Errorf("entries[0] = %+v, want original Samosa row", entries[0])
	}
}

func TestDuckDBStore_SavePartialOverlap(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, day("2026-03-02"), sampleResults()[:1]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	res, err := store.Save(ctx, day("2026-03-02"), sampleResults())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res != (SaveResult{Saved: 2, Skipped: 1}) {
		t.Errorf("overlap save = %+v, want 2/1", res)
	}

	other, err := store.Save(ctx, day("2026-03-03"), sampleResults())
	if err != nil {
		t.Fatalf("Save other date: %v", err)
	}
	if other.Saved != 3 {
		t.Errorf("other date saved = %d, want 3", other.Saved)
	}
}

func TestDuckDBStore_History(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, day("2026-03-02"), sampleResults()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := store.History(ctx, day("2026-03-02"))
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	var order []string
	for _, e := range entries {
		order = append(order, e.ItemName)
		if e.ForecastDate != "2026-03-02" || e.GeneratedAt.IsZero() || e.ID < 1 {
			t.Errorf("entry metadata = %+v", e)
		}
	}
	if fmt.Sprint(order) != "[Samosa Tea Poha]" {
		t.Errorf("order = %v, want by predicted desc", order)
	}

	poha := entries[2]
	want := sampleResults()[2]
	if poha.Result != want {
		t.Errorf("round-trip = %+v, want %+v", poha.Result, want)
	}

	empty, err := store.History(ctx, day("2026-01-01"))
	if err != nil || len(empty) != 0 || empty == nil {
		t.Errorf("empty History = %#v, %v", empty, err)
	}
}

func TestDuckDBStore_ListDates(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	start := day("2026-01-01")
	for i := 0; i < RecentDatesLimit+3; i++ {
		n := 1 + i%3
		if _, err := store.Save(ctx, start.AddDate(0, 0, i), sampleResults()[:n]); err != nil {
			t.Fatalf("Save day %d: %v", i, err)
		}
	}

	dates, err := store.ListDates(ctx)
	if err != nil {
		t.Fatalf("ListDates: %v", err)
	}
	if len(dates) != RecentDatesLimit {
		t.Fatalf("got %d dates, want %d", len(dates), RecentDatesLimit)
	}
	last := RecentDatesLimit + 2
	if dates[0].ForecastDate != start.AddDate(0, 0, last).Format(forecast.DateLayout) {
		t.Errorf("first date = %s, want latest", dates[0].ForecastDate)
	}
	if dates[0].ItemCount != 1+last%3 {
		t.Errorf("item count = %d, want %d", dates[0].ItemCount, 1+last%3)
	}
	if dates[0].GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestResults(t *testing.T) {
	entries := []Entry{{ID: 1, Result: forecast.Result{ItemName: "a"}}, {ID: 2, Result: forecast.Result{ItemName: "b"}}}
	rs := Results(entries)
	if len(rs) != 2 || rs[0].ItemName != "a" || rs[1].ItemName != "b" {
		t.Errorf("Results = %+v", rs)
	}
}
