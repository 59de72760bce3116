// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/kitchencast/internal/middleware"
)

// compressionLevel is the gzip level for JSON and CSV bodies.
const compressionLevel = 5

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router binds handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware config selects the defaults.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to every route, in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chimiddleware.Compress(compressionLevel, "application/json", "text/csv"))

		r.Route("/forecast", func(r chi.Router) {
			r.Get("/", router.handler.Forecast)
			r.Post("/save", router.handler.SaveForecast)
			r.Get("/history", router.handler.HistoryDates)
			r.Get("/history/{date}", router.handler.History)
			r.Get("/history/{date}/accuracy", router.handler.HistoryAccuracy)
			r.Get("/accuracy", router.handler.Accuracy)
			r.Get("/export", router.handler.Export)
		})

		r.Get("/insights", router.handler.Insights)
		r.Get("/waste-cost", router.handler.WasteCost)
		r.Get("/alerts", router.handler.Alerts)
		r.Get("/dashboard", router.handler.Dashboard)

		r.Get("/events", router.handler.Events)
		r.Post("/events", router.handler.CreateEvent)
		r.Delete("/events/{id}", router.handler.DeleteEvent)

		r.Post("/transactions", router.handler.RecordTransaction)

		r.Get("/menu", router.handler.Menu)
		r.Put("/menu", router.handler.UpsertMenuItem)
	})

	return r
}
