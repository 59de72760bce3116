// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package api

import (
	"net/http"

	"github.com/tomtom215/kitchencast/internal/database"
)

// dashboardWindowDays is how far back the daily revenue series reaches
// from the as-of day, inclusive at both ends.
const dashboardWindowDays = 7

// DashboardResponse summarizes sales for the front-of-house dashboard.
type DashboardResponse struct {
	TopItem *database.ItemSales     `json:"top_item"`
	Weekly  []database.RevenuePoint `json:"weekly"`
	Monthly []database.RevenuePoint `json:"monthly"`
}

// Insights handles GET /insights.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}

	ins, err := h.insights.Insights(r.Context(), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(ins)
}

// WasteCost handles GET /waste-cost.
func (h *Handler) WasteCost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}

	report, err := h.insights.WasteCost(r.Context(), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(report)
}

// Alerts handles GET /alerts.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}

	alerts, err := h.insights.Alerts(r.Context(), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.List(alerts, len(alerts))
}

// Dashboard handles GET /dashboard?as_of=YYYY-MM-DD.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}
	ctx := r.Context()

	top, err := h.ledger.TopItem(ctx)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	weekly, err := h.ledger.DailyRevenue(ctx, asOf.AddDate(0, 0, -dashboardWindowDays), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	monthly, err := h.ledger.MonthlyRevenue(ctx)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(DashboardResponse{TopItem: top, Weekly: weekly, Monthly: monthly})
}
