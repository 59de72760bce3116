// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/kitchencast/internal/database"
	"github.com/tomtom215/kitchencast/internal/forecast"
	"github.com/tomtom215/kitchencast/internal/ingest"
	"github.com/tomtom215/kitchencast/internal/logging"
	"github.com/tomtom215/kitchencast/internal/validation"
)

// Events handles GET /events, the most recent calendar entries.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	events, err := h.ledger.ListEvents(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.List(events, len(events))
}

// CreateEvent handles POST /events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req EventRequest
	if !decodeJSON(rw, w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	ev := &forecast.Event{
		Date:   req.EventDate,
		Type:   req.EventType,
		Title:  req.Title,
		Impact: req.Impact,
	}
	err := h.ledger.AddEvent(r.Context(), ev)
	if errors.Is(err, database.ErrEventExists) {
		rw.Conflict("An event of type " + req.EventType + " already exists on " + req.EventDate)
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("event_id", ev.ID).
		Str("date", ev.Date).
		Str("type", ev.Type).
		Msg("Event created")
	rw.Created(ev)
}

// DeleteEvent handles DELETE /events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		rw.ValidationError(validation.NewFieldError("id", "gt", "id must be a positive integer", raw))
		return
	}

	err = h.ledger.DeleteEvent(r.Context(), id)
	if errors.Is(err, database.ErrEventNotFound) {
		rw.NotFound("Event not found")
		return
	}
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.NoContent()
}

// RecordTransaction handles POST /transactions. The sale is committed
// before the ingestion event is published; a publish failure is logged and
// does not fail the request.
func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var payload transactionPayload
	if !decodeJSON(rw, w, r, &payload) {
		return
	}
	req := payload.normalize()
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	tx := &database.Transaction{
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Total:    req.Total,
	}
	if req.Day != "" {
		d, err := forecast.ParseDay(req.Day)
		if err != nil {
			rw.ValidationError(dateFieldError("day", req.Day))
			return
		}
		tx.Day = d
	} else {
		tx.Day = h.today()
	}

	if _, err := h.ledger.InsertTransaction(r.Context(), tx); err != nil {
		rw.DatabaseError(err)
		return
	}

	if h.publisher != nil {
		ev := &ingest.TransactionRecorded{
			TransactionID: tx.ID,
			ItemName:      tx.ItemName,
			Quantity:      tx.Quantity,
			Day:           tx.Day.Format(forecast.DateLayout),
			RecordedAt:    h.now().UTC(),
		}
		if err := h.publisher.PublishTransaction(r.Context(), ev); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).
				Int64("transaction_id", tx.ID).
				Msg("Transaction recorded but event not published")
		}
	}

	rw.Created(tx)
}

// Menu handles GET /menu.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	items, err := h.ledger.ListMenu(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.List(items, len(items))
}

// UpsertMenuItem handles PUT /menu.
func (h *Handler) UpsertMenuItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var payload menuPayload
	if !decodeJSON(rw, w, r, &payload) {
		return
	}
	req := payload.normalize()
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	item := &database.MenuItem{
		Name:      req.Name,
		Price:     req.Price,
		CostPrice: req.CostPrice,
	}
	if err := h.ledger.UpsertMenuItem(r.Context(), item); err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(item)
}
