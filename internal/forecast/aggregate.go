// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"sort"
	"time"
)

// DailySeries is an item's quantity per day over a contiguous range.
// Quantities[i] belongs to Start + i days; days without sales hold 0.
type DailySeries struct {
	ItemName   string
	Start      time.Time
	Quantities []float64
}

// Len returns the number of days in the series.
func (s DailySeries) Len() int { return len(s.Quantities) }

// DayAt returns the calendar day of index i.
func (s DailySeries) DayAt(i int) time.Time { return s.Start.AddDate(0, 0, i) }

// End returns the last day of the series.
func (s DailySeries) End() time.Time { return s.DayAt(len(s.Quantities) - 1) }

// Aggregate groups ledger totals into one gap-filled series per item,
// spanning that item's first to last observed day. Duplicate (item, day)
// rows are summed. Series are returned sorted by item name.
func Aggregate(rows []DailyTotal) []DailySeries {
	type bucket struct {
		first, last time.Time
		byDay       map[time.Time]float64
	}
	buckets := make(map[string]*bucket)

	for _, r := range rows {
		d := Day(r.Day)
		b, ok := buckets[r.ItemName]
		if !ok {
			b = &bucket{first: d, last: d, byDay: make(map[time.Time]float64)}
			buckets[r.ItemName] = b
		}
		if d.Before(b.first) {
			b.first = d
		}
		if d.After(b.last) {
			b.last = d
		}
		b.byDay[d] += r.Quantity
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]DailySeries, 0, len(names))
	for _, name := range names {
		b := buckets[name]
		n := daysBetween(b.first, b.last) + 1
		qty := make([]float64, n)
		for d, q := range b.byDay {
			qty[daysBetween(b.first, d)] = q
		}
		out = append(out, DailySeries{ItemName: name, Start: b.first, Quantities: qty})
	}
	return out
}

// daysBetween counts whole days from a to b. Both must be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
