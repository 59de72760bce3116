// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package api

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/kitchencast/internal/archive"
	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/logging"
)

// SaveResponse reports the outcome of POST /forecast/save.
type SaveResponse struct {
	Date string `json:"date"`
	archive.SaveResult
}

// HistoryResponse is the archived forecast for one date.
type HistoryResponse struct {
	Date      string          `json:"date"`
	Forecasts []archive.Entry `json:"forecasts"`
}

// csvHeader is the column order of the forecast export.
var csvHeader = []string{
	"date", "item_name", "avg_last7_qty", "predicted_qty",
	"confidence", "suggestion", "tag", "history_points",
}

// Forecast handles GET /forecast?as_of=YYYY-MM-DD.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}

	fc, err := h.engine.Compute(r.Context(), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(fc)
}

// SaveForecast handles POST /forecast/save. The forecast is recomputed
// and archived; rows already archived for the date are skipped.
func (h *Handler) SaveForecast(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}

	fc, err := h.engine.Compute(r.Context(), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	target, err := forecast.ParseDay(fc.Date)
	if err != nil {
		rw.InternalError("Invalid forecast date")
		return
	}

	res, err := h.archive.Save(r.Context(), target, fc.Forecasts)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("date", fc.Date).
		Int("saved", res.Saved).
		Int("skipped", res.Skipped).
		Msg("Forecast saved")
	rw.Success(SaveResponse{Date: fc.Date, SaveResult: res})
}

// HistoryDates handles GET /forecast/history.
func (h *Handler) HistoryDates(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	dates, err := h.archive.ListDates(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.List(dates, len(dates))
}

// History handles GET /forecast/history/{date}.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	date, ok := pathDay(rw, r)
	if !ok {
		return
	}

	entries, err := h.archive.History(r.Context(), date)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(HistoryResponse{Date: date.Format(forecast.DateLayout), Forecasts: entries})
}

// HistoryAccuracy handles GET /forecast/history/{date}/accuracy, scoring
// the archived forecast against that day's sales.
func (h *Handler) HistoryAccuracy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	date, ok := pathDay(rw, r)
	if !ok {
		return
	}

	entries, err := h.archive.History(r.Context(), date)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	report, err := h.evaluator.CompareSnapshot(r.Context(), date, archive.Results(entries))
	if errors.Is(err, forecast.ErrNoData) {
		rw.NotFound("No archived forecast for " + date.Format(forecast.DateLayout))
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(report)
}

// Accuracy handles GET /forecast/accuracy?today=YYYY-MM-DD.
func (h *Handler) Accuracy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	today, ok := h.dayParam(rw, r, "today")
	if !ok {
		return
	}

	report, err := h.evaluator.Evaluate(r.Context(), today)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(report)
}

// Export handles GET /forecast/export, streaming the live forecast as CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	asOf, ok := h.dayParam(rw, r, "as_of")
	if !ok {
		return
	}

	fc, err := h.engine.Compute(r.Context(), asOf)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="forecast_`+fc.Date+`.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write CSV header")
		return
	}
	for i := range fc.Forecasts {
		res := &fc.Forecasts[i]
		if err := cw.Write([]string{
			fc.Date,
			res.ItemName,
			formatQty(res.AvgLast7Qty),
			formatQty(res.PredictedQty),
			strconv.Itoa(res.Confidence),
			string(res.Suggestion),
			string(res.Tag),
			strconv.Itoa(res.HistoryPoints),
		}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write CSV row")
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error().Err(err).Msg("Failed to flush CSV export")
	}
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pathDay parses the {date} URL parameter.
func pathDay(rw *ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := chi.URLParam(r, "date")
	d, err := forecast.ParseDay(raw)
	if err != nil {
		rw.ValidationError(dateFieldError("date", raw))
		return time.Time{}, false
	}
	return d, true
}
