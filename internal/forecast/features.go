// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import "time"

// rollWindow is the trailing mean length and the number of leading days a
// series consumes before its first usable row.
const rollWindow = 7

// NumFeatures is the width of FeatureRow.Vector.
const NumFeatures = 11

// FeatureRow is one supervised-learning example: the features of a day and
// the quantity sold that day.
type FeatureRow struct {
	Day         time.Time
	T           int
	Weekday     int // Monday = 0
	Lag1        float64
	Lag2        float64
	Lag3        float64
	Roll7       float64 // mean of the 7 days ending at Day
	EventImpact float64
	Holiday     bool
	Festival    bool
	Exam        bool
	SpecialMenu bool
	Quantity    float64
}

// Vector returns the model inputs in fixed column order:
// t, weekday, lag1, lag2, lag3, roll7, event_impact, holiday, festival, exam, special_menu.
func (r FeatureRow) Vector() []float64 {
	return []float64{
		float64(r.T),
		float64(r.Weekday),
		r.Lag1, r.Lag2, r.Lag3,
		r.Roll7,
		r.EventImpact,
		boolFeature(r.Holiday),
		boolFeature(r.Festival),
		boolFeature(r.Exam),
		boolFeature(r.SpecialMenu),
	}
}

// BuildFeatures derives the usable rows of a series. A row needs its three
// lags and a full 7-day window behind it, so the first 7 days only serve as
// history and a series of n days yields max(0, n-7) rows.
func BuildFeatures(s DailySeries, cal Calendar) []FeatureRow {
	n := s.Len()
	if n <= rollWindow {
		return nil
	}

	q := s.Quantities
	rows := make([]FeatureRow, 0, n-rollWindow)
	for t := rollWindow; t < n; t++ {
		var window float64
		for _, v := range q[t-rollWindow+1 : t+1] {
			window += v
		}
		day := s.DayAt(t)
		ev := cal.Lookup(day)
		rows = append(rows, FeatureRow{
			Day:         day,
			T:           t,
			Weekday:     Weekday(day),
			Lag1:        q[t-1],
			Lag2:        q[t-2],
			Lag3:        q[t-3],
			Roll7:       window / rollWindow,
			EventImpact: ev.Impact,
			Holiday:     ev.Holiday,
			Festival:    ev.Festival,
			Exam:        ev.Exam,
			SpecialMenu: ev.SpecialMenu,
			Quantity:    q[t],
		})
	}
	return rows
}

// NextDayVector builds the model input for target. t continues the series
// index, roll7 is filled with the baseline, and the lags are the last three
// quantities of the series (0 where the series is shorter). Weekday and
// calendar features come from target itself.
func NextDayVector(s DailySeries, baseline float64, cal Calendar, target time.Time) []float64 {
	n := s.Len()
	ev := cal.Lookup(target)
	lag := func(k int) float64 {
		if n-k < 0 {
			return 0
		}
		return s.Quantities[n-k]
	}
	return FeatureRow{
		T:           n,
		Weekday:     Weekday(target),
		Lag1:        lag(1),
		Lag2:        lag(2),
		Lag3:        lag(3),
		Roll7:       baseline,
		EventImpact: ev.Impact,
		Holiday:     ev.Holiday,
		Festival:    ev.Festival,
		Exam:        ev.Exam,
		SpecialMenu: ev.SpecialMenu,
	}.Vector()
}

// Baseline is the mean of the last 7 quantities, or of all of them when
// fewer exist. An empty slice yields 0.
func Baseline(q []float64) float64 {
	if len(q) == 0 {
		return 0
	}
	tail := q
	if len(tail) > rollWindow {
		tail = tail[len(tail)-rollWindow:]
	}
	var sum float64
	for _, v := range tail {
		sum += v
	}
	return sum / float64(len(tail))
}

// Weekday returns 0 for Monday through 6 for Sunday.
func Weekday(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
