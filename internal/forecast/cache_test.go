// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/kitchencast/internal/forecast/boost"
)

func openTestCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := OpenBadgerCache("", time.Hour)
	if err != nil {
		t.Fatalf("OpenBadgerCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBadgerCacheGetPut(t *testing.T) {
	c := openTestCache(t)

	if _, ok, err := c.Get("pred/x/1"); err != nil || ok {
		t.Fatalf("Get on empty cache = ok %v err %v", ok, err)
	}
	if err := c.Put("pred/x/1", 12.5); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, ok, err := c.Get("pred/x/1")
	if err != nil || !ok || v != 12.5 {
		t.Errorf("Get = %v, %v, %v; want 12.5, true, nil", v, ok, err)
	}
	if err := c.RunGC(); err != nil {
		t.Errorf("RunGC in memory: %v", err)
	}
}

func TestBadgerCacheInvalidateItem(t *testing.T) {
	c := openTestCache(t)
	s := func(name string) DailySeries {
		return DailySeries{ItemName: name, Start: mustDay("2026-01-01"), Quantities: []float64{1, 2}}
	}
	cfg := boost.DefaultConfig()

	keys := []string{
		CacheKey(s("a"), nil, mustDay("2026-01-03"), cfg),
		CacheKey(s("a"), nil, mustDay("2026-01-04"), cfg),
		CacheKey(s("a/b"), nil, mustDay("2026-01-03"), cfg),
		CacheKey(s("ab"), nil, mustDay("2026-01-03"), cfg),
	}
	for _, k := range keys {
		if err := c.Put(k, 1); err != nil {
			t.Fatalf("Put(%s): %v", k, err)
		}
	}

	n, err := c.InvalidateItem("a")
	if err != nil {
		t.Fatalf("InvalidateItem: %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d entries, want 2", n)
	}
	for i, k := range keys {
		_, ok, _ := c.Get(k)
		if want := i >= 2; ok != want {
			t.Errorf("key %s present = %v, want %v", k, ok, want)
		}
	}

	if n, err := c.InvalidateItem("missing"); err != nil || n != 0 {
		t.Errorf("InvalidateItem(missing) = %d, %v", n, err)
	}
}

func TestOpenBadgerCacheRejectsTTL(t *testing.T) {
	if _, err := OpenBadgerCache("", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
}

func TestCacheKey(t *testing.T) {
	s := DailySeries{ItemName: "Puri", Start: mustDay("2026-01-01"), Quantities: []float64{3, 4, 5}}
	target := mustDay("2026-01-04")
	cfg := boost.DefaultConfig()
	base := CacheKey(s, nil, target, cfg)

	if !strings.HasPrefix(base, "pred/Puri/") {
		t.Errorf("key %s lacks item prefix", base)
	}
	if again := CacheKey(s, nil, target, cfg); again != base {
		t.Error("CacheKey is not stable")
	}

	changed := s
	changed.Quantities = []float64{3, 4, 6}
	other := cfg
	other.Seed++
	cal := BuildCalendar([]Event{{ID: 1, Date: "2026-01-04", Type: "Holiday"}})

	variants := map[string]string{
		"quantity": CacheKey(changed, nil, target, cfg),
		"target":   CacheKey(s, nil, target.AddDate(0, 0, 1), cfg),
		"config":   CacheKey(s, nil, target, other),
		"calendar": CacheKey(s, cal, target, cfg),
	}
	for name, k := range variants {
		if k == base {
			t.Errorf("changing %s did not change the key", name)
		}
	}
}
