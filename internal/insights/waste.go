// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/kitchencast/internal/forecast"
)

// MaxRiskItems caps WasteReport.RiskItems.
const MaxRiskItems = 10

// RiskItem values the surplus expected for one overproduction-risk item.
type RiskItem struct {
	ItemName       string  `json:"item_name"`
	ExtraUnitsRisk float64 `json:"extra_units_risk"`
	CostPrice      float64 `json:"cost_price"`
	EstimatedLoss  float64 `json:"estimated_loss"`
}

// WasteReport is the estimated cost of tomorrow's likely surplus.
type WasteReport struct {
	EstimatedWasteCost float64    `json:"estimated_waste_cost"`
	RiskItems          []RiskItem `json:"risk_items"`
}

// WasteCost values the gap between recent average and predicted demand for
// every OVERPRODUCTION_RISK result at the item's cost price. Items missing
// from costs are valued at zero. Money is summed in decimal and rounded to
// 2 places once, at the end.
func WasteCost(results []forecast.Result, costs map[string]float64) WasteReport {
	type valued struct {
		item RiskItem
		loss decimal.Decimal
	}

	total := decimal.Zero
	var items []valued
	for i := range results {
		r := &results[i]
		if r.Tag != forecast.TagOverproductionRisk {
			continue
		}
		extra := decimal.NewFromFloat(r.AvgLast7Qty).Sub(decimal.NewFromFloat(r.PredictedQty))
		if extra.IsNegative() {
			extra = decimal.Zero
		}
		cost := decimal.NewFromFloat(costs[r.ItemName])
		loss := extra.Mul(cost)
		total = total.Add(loss)

		items = append(items, valued{
			item: RiskItem{
				ItemName:       r.ItemName,
				ExtraUnitsRisk: extra.Round(2).InexactFloat64(),
				CostPrice:      cost.InexactFloat64(),
				EstimatedLoss:  loss.Round(2).InexactFloat64(),
			},
			loss: loss,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].loss.GreaterThan(items[j].loss)
	})
	if len(items) > MaxRiskItems {
		items = items[:MaxRiskItems]
	}

	report := WasteReport{
		EstimatedWasteCost: total.Round(2).InexactFloat64(),
		RiskItems:          make([]RiskItem, len(items)),
	}
	for i := range items {
		report.RiskItems[i] = items[i].item
	}
	return report
}
