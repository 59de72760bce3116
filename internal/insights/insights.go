// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

// Package insights turns a ranked forecast into kitchen-facing guidance:
// per-tag insight cards, an estimate of money at risk from overproduction,
// and a short ordered alert list.
package insights

import (
	"fmt"
	"strconv"

	"github.com/tomtom215/kitchencast/internal/forecast"
)

// Insight is one guidance card for an item.
type Insight struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	ItemName string `json:"item_name"`
}

// Insights groups cards by demand outlook. Each list keeps forecast order.
type Insights struct {
	HighDemand []Insight `json:"high_demand"`
	WasteRisk  []Insight `json:"waste_risk"`
	Stable     []Insight `json:"stable"`
}

// Build groups results by tag.
func Build(results []forecast.Result) Insights {
	out := Insights{
		HighDemand: []Insight{},
		WasteRisk:  []Insight{},
		Stable:     []Insight{},
	}
	for i := range results {
		r := &results[i]
		switch r.Tag {
		case forecast.TagHighDemand:
			out.HighDemand = append(out.HighDemand, Insight{
				Title:    "Increase " + r.ItemName,
				Message:  fmt.Sprintf("Predicted demand %s vs avg %s.", qty(r.PredictedQty), qty(r.AvgLast7Qty)),
				ItemName: r.ItemName,
			})
		case forecast.TagOverproductionRisk:
			out.WasteRisk = append(out.WasteRisk, Insight{
				Title:    "Reduce " + r.ItemName,
				Message:  fmt.Sprintf("Demand drop predicted (%s). Risk of overproduction.", qty(r.PredictedQty)),
				ItemName: r.ItemName,
			})
		default:
			out.Stable = append(out.Stable, Insight{
				Title:    "Maintain " + r.ItemName,
				Message:  "Demand stable based on history.",
				ItemName: r.ItemName,
			})
		}
	}
	return out
}

func qty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
