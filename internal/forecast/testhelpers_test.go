// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// fakeSource is an in-memory DataSource.
type fakeSource struct {
	totals []DailyTotal
	events []Event
	err    error
}

func (f *fakeSource) DailyTotals(_ context.Context, from, to time.Time) ([]DailyTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []DailyTotal
	for _, t := range f.totals {
		d := Day(t.Day)
		if !d.Before(from) && !d.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeSource) TotalsForDay(_ context.Context, day time.Time) ([]ItemTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	sums := map[string]float64{}
	var order []string
	for _, t := range f.totals {
		if Day(t.Day).Equal(Day(day)) {
			if _, ok := sums[t.ItemName]; !ok {
				order = append(order, t.ItemName)
			}
			sums[t.ItemName] += t.Quantity
		}
	}
	out := make([]ItemTotal, 0, len(order))
	for _, name := range order {
		out = append(out, ItemTotal{ItemName: name, Quantity: sums[name]})
	}
	return out, nil
}

func (f *fakeSource) Events(context.Context) ([]Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

// addDays appends one row per day ending at last, oldest first.
func (f *fakeSource) addDays(item string, last time.Time, qty []float64) {
	start := Day(last).AddDate(0, 0, -(len(qty) - 1))
	for i, q := range qty {
		f.totals = append(f.totals, DailyTotal{ItemName: item, Day: start.AddDate(0, 0, i), Quantity: q})
	}
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func mustDay(s string) time.Time {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
