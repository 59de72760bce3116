// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"math"
	"sort"
	"strings"
	"time"
)

// CalendarEntry is the merged feature bundle for one date.
type CalendarEntry struct {
	Impact      float64 `json:"impact"`
	Holiday     bool    `json:"is_holiday"`
	Festival    bool    `json:"is_festival"`
	Exam        bool    `json:"is_exam"`
	SpecialMenu bool    `json:"is_special_menu"`
	Title       string  `json:"title"`
}

// Calendar maps YYYY-MM-DD to its merged entry. Dates without events are absent.
type Calendar map[string]CalendarEntry

// BuildCalendar folds events into a Calendar.
//
// Same-day impacts are summed. A flag is set when any same-day event type
// contains its keyword, case-insensitively: "holiday", "festival", "exam",
// and "menu" or "special" for the special-menu flag. Events are visited in
// ascending ID order, so the title of the lowest-ID event with a non-empty
// title wins. Non-finite impacts count as 0.
func BuildCalendar(events []Event) Calendar {
	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	cal := make(Calendar, len(ordered))
	for _, ev := range ordered {
		entry := cal[ev.Date]

		if !math.IsNaN(ev.Impact) && !math.IsInf(ev.Impact, 0) {
			entry.Impact += ev.Impact
		}

		kind := strings.ToLower(strings.TrimSpace(ev.Type))
		if strings.Contains(kind, "holiday") {
			entry.Holiday = true
		}
		if strings.Contains(kind, "festival") {
			entry.Festival = true
		}
		if strings.Contains(kind, "exam") {
			entry.Exam = true
		}
		if strings.Contains(kind, "menu") || strings.Contains(kind, "special") {
			entry.SpecialMenu = true
		}

		if entry.Title == "" {
			entry.Title = ev.Title
		}
		cal[ev.Date] = entry
	}
	return cal
}

// Lookup returns the entry for day, or the zero entry.
func (c Calendar) Lookup(day time.Time) CalendarEntry {
	return c[day.Format(DateLayout)]
}
