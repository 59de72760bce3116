// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package insights

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/kitchencast/internal/forecast"
)

func result(name string, avg, pred float64, tag forecast.Tag) forecast.Result {
	return forecast.Result{ItemName: name, AvgLast7Qty: avg, PredictedQty: pred, Tag: tag}
}

func TestBuild(t *testing.T) {
	ins := Build([]forecast.Result{
		result("Samosa", 18, 23, forecast.TagHighDemand),
		result("Poha", 12, 8.5, forecast.TagOverproductionRisk),
		result("Tea", 10, 10, forecast.TagStable),
		result("Vada", 5, 7, forecast.TagHighDemand),
	})

	if len(ins.HighDemand) != 2 || len(ins.WasteRisk) != 1 || len(ins.Stable) != 1 {
		t.Fatalf("group sizes = %d/%d/%d", len(ins.HighDemand), len(ins.WasteRisk), len(ins.Stable))
	}
	want := Insight{Title: "Increase Samosa", Message: "Predicted demand 23 vs avg 18.", ItemName: "Samosa"}
	if ins.HighDemand[0] != want {
		t.Errorf("HighDemand[0] = %+v, want %+v", ins.HighDemand[0], want)
	}
	if ins.HighDemand[1].ItemName != "Vada" {
		t.Errorf("HighDemand order = %+v", ins.HighDemand)
	}
	if got := ins.WasteRisk[0]; got.Title != "Reduce Poha" || got.Message != "Demand drop predicted (8.5). Risk of overproduction." {
		t.Errorf("WasteRisk[0] = %+v", got)
	}
	if got := ins.Stable[0]; got.Title != "Maintain Tea" || got.Message != "Demand stable based on history." {
		t.Errorf("Stable[0] = %+v", got)
	}
}

func TestBuildEmptyListsNotNil(t *testing.T) {
	ins := Build(nil)
	if ins.HighDemand == nil || ins.WasteRisk == nil || ins.Stable == nil {
		t.Errorf("Build(nil) = %#v, want empty non-nil lists", ins)
	}
}

func TestWasteCost(t *testing.T) {
	results := []forecast.Result{
		result("Poha", 12, 8.5, forecast.TagOverproductionRisk),
		result("Upma", 20, 10, forecast.TagOverproductionRisk),
		result("Mystery", 9, 3, forecast.TagOverproductionRisk),
		result("Samosa", 18, 23, forecast.TagHighDemand),
	}
	costs := map[string]float64{"Poha": 7.1, "Upma": 4.25, "Samosa": 100}

	rep := WasteCost(results, costs)

	// Poha 3.5*7.1 = 24.85, Upma 10*4.25 = 42.5, Mystery 6*0 = 0.
	if rep.EstimatedWasteCost != 67.35 {
		t.Errorf("EstimatedWasteCost = %v, want 67.35", rep.EstimatedWasteCost)
	}
	if len(rep.RiskItems) != 3 {
		t.Fatalf("risk items = %d, want 3", len(rep.RiskItems))
	}
	order := fmt.Sprint(rep.RiskItems[0].ItemName, rep.RiskItems[1].ItemName, rep.RiskItems[2].ItemName)
	if order != "UpmaPohaMystery" {
		t.Errorf("order = %s, want by loss desc", order)
	}
	want := RiskItem{ItemName: "Poha", ExtraUnitsRisk: 3.5, CostPrice: 7.1, EstimatedLoss: 24.85}
	if rep.RiskItems[1] != want {
		t.Errorf("Poha = %+v, want %+v", rep.RiskItems[1], want)
	}
	if rep.RiskItems[2].EstimatedLoss != 0 {
		t.Errorf("unknown item loss = %v, want 0", rep.RiskItems[2].EstimatedLoss)
	}
}

func TestWasteCostClampsAndCaps(t *testing.T) {
	var results []forecast.Result
	costs := map[string]float64{}
	for i := 0; i < 14; i++ {
		name := fmt.Sprintf("item%02d", i)
		results = append(results, result(name, float64(10+i), 5, forecast.TagOverproductionRisk))
		costs[name] = 1
	}
	// Rounding can leave a risk-tagged item predicted above its average.
	results = append(results, result("odd", 4, 6, forecast.TagOverproductionRisk))
	costs["odd"] = 50

	rep := WasteCost(results, costs)
	if len(rep.RiskItems) != MaxRiskItems {
		t.Fatalf("risk items = %d, want %d", len(rep.RiskItems), MaxRiskItems)
	}
	if rep.RiskItems[0].ItemName != "item13" {
		t.Errorf("largest loss = %s, want item13", rep.RiskItems[0].ItemName)
	}
	// Sum over all 14 items: (5+...+18) = 161; odd contributes nothing.
	if rep.EstimatedWasteCost != 161 {
		t.Errorf("EstimatedWasteCost = %v, want 161", rep.EstimatedWasteCost)
	}
}

func TestAlerts(t *testing.T) {
	var results []forecast.Result
	for i := 0; i < 7; i++ {
		results = append(results, result(fmt.Sprintf("hi%d", i), 10, 20, forecast.TagHighDemand))
		results = append(results, result(fmt.Sprintf("lo%d", i), 20, 10, forecast.TagOverproductionRisk))
	}
	ins := Build(results)

	alerts := Alerts(ins, WasteReport{EstimatedWasteCost: 250.5}, DefaultDangerThreshold)
	if len(alerts) != 11 {
		t.Fatalf("alerts = %d, want 11", len(alerts))
	}
	first := alerts[0]
	if first.Type != AlertTypeCost || first.Severity != SeverityDanger || first.Message != "Potential loss: ₹250.50" {
		t.Errorf("cost alert = %+v", first)
	}
	for i := 1; i <= 5; i++ {
		if alerts[i].Type != AlertTypeWaste || alerts[i].Severity != SeverityWarning {
			t.Errorf("alerts[%d] = %+v, want waste warning", i, alerts[i])
		}
	}
	for i := 6; i <= 10; i++ {
		if alerts[i].Type != AlertTypeDemand || alerts[i].Severity != SeverityInfo {
			t.Errorf("alerts[%d] = %+v, want demand info", i, alerts[i])
		}
	}
	if alerts[1].Title != "Reduce lo0" || alerts[6].Title != "Increase hi0" {
		t.Errorf("alert titles = %q, %q", alerts[1].Title, alerts[6].Title)
	}
}

func TestAlertsThreshold(t *testing.T) {
	at := Alerts(Build(nil), WasteReport{EstimatedWasteCost: 200}, 200)
	if len(at) != 1 || at[0].Severity != SeverityInfo {
		t.Errorf("at threshold = %+v, want single info alert", at)
	}
	above := Alerts(Build(nil), WasteReport{EstimatedWasteCost: 60}, 50)
	if above[0].Severity != SeverityDanger {
		t.Errorf("custom threshold severity = %s, want danger", above[0].Severity)
	}
}

type fakeForecaster struct {
	fc    *forecast.Forecast
	err   error
	calls int
}

func (f *fakeForecaster) Compute(context.Context, time.Time) (*forecast.Forecast, error) {
	f.calls++
	return f.fc, f.err
}

type fakeCosts struct {
	costs map[string]float64
	err   error
}

func (f fakeCosts) MenuCosts(context.Context) (map[string]float64, error) {
	return f.costs, f.err
}

func TestService(t *testing.T) {
	fc := &fakeForecaster{fc: &forecast.Forecast{Date: "2026-03-02", Forecasts: []forecast.Result{
		result("Upma", 300, 100, forecast.TagOverproductionRisk),
		result("Samosa", 18, 23, forecast.TagHighDemand),
	}}}
	svc := NewService(fc, fakeCosts{costs: map[string]float64{"Upma": 2}}, 0)
	ctx := context.Background()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	ins, err := svc.Insights(ctx, asOf)
	if err != nil || len(ins.WasteRisk) != 1 || len(ins.HighDemand) != 1 {
		t.Errorf("Insights = %+v, %v", ins, err)
	}

	waste, err := svc.WasteCost(ctx, asOf)
	if err != nil || waste.EstimatedWasteCost != 400 {
		t.Errorf("WasteCost = %+v, %v", waste, err)
	}

	fc.calls = 0
	alerts, err := svc.Alerts(ctx, asOf)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if fc.calls != 1 {
		t.Errorf("Alerts computed the forecast %d times, want 1", fc.calls)
	}
	if len(alerts) != 3 || alerts[0].Severity != SeverityDanger {
		t.Errorf("alerts = %+v", alerts)
	}
}

func TestServiceErrors(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	svc := NewService(&fakeForecaster{err: boom}, fakeCosts{}, 0)
	if _, err := svc.Alerts(ctx, time.Now()); !errors.Is(err, boom) {
		t.Errorf("forecast error = %v", err)
	}

	svc = NewService(&fakeForecaster{fc: &forecast.Forecast{}}, fakeCosts{err: boom}, 0)
	if _, err := svc.WasteCost(ctx, time.Now()); !errors.Is(err, boom) {
		t.Errorf("cost error = %v", err)
	}
}
