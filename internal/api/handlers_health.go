// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package api

import (
	"context"
	"net/http"
	"time"
)

// healthPingTimeout bounds the database probe.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status        string  `json:"status"` // "healthy" or "degraded"
	Database      bool    `json:"database"`
	IngestBreaker string  `json:"ingest_breaker,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health handles GET /health. A failed database ping reports degraded
// with 503 so load balancers stop routing to the instance.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Status:        "healthy",
		Database:      h.ledger.Ping(ctx) == nil,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.publisher != nil {
		status.IngestBreaker = h.publisher.State()
	}

	rw := NewResponseWriter(w, r)
	if !status.Database {
		status.Status = "degraded"
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{Success: false, Data: status, Meta: rw.meta()})
		return
	}
	rw.Success(status)
}
