// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/kitchencast/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// EventRequest is the validated body of POST /events.
type EventRequest struct {
	EventDate string  `json:"event_date" validate:"required,calendar_date"`
	EventType string  `json:"event_type" validate:"required,max=64"`
	Title     string  `json:"title" validate:"required,max=200"`
	Impact    float64 `json:"impact" validate:"finite"`
}

// TransactionRequest is the validated body of POST /transactions after
// alias normalization.
type TransactionRequest struct {
	ItemName string  `json:"item_name" validate:"required,max=200"`
	Quantity float64 `json:"quantity" validate:"finite,gte=1"`
	Day      string  `json:"day" validate:"omitempty,calendar_date"`
	Total    float64 `json:"total" validate:"finite,gte=0"`
}

// MenuItemRequest is the validated body of PUT /menu after alias
// normalization.
type MenuItemRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Price     float64 `json:"price" validate:"finite,gte=0"`
	CostPrice float64 `json:"cost_price" validate:"finite,gte=0"`
}

// transactionPayload accepts the item name under any of the names the
// point-of-sale clients send.
type transactionPayload struct {
	ItemName      string   `json:"item_name"`
	FoodName      string   `json:"food_name"`
	FoodNameCamel string   `json:"foodName"`
	Food          string   `json:"food"`
	Name          string   `json:"name"`
	Quantity      *float64 `json:"quantity"`
	Day           string   `json:"day"`
	Total         float64  `json:"total"`
}

func (p *transactionPayload) normalize() TransactionRequest {
	qty := 1.0
	if p.Quantity != nil {
		qty = *p.Quantity
	}
	return TransactionRequest{
		ItemName: firstNonEmpty(p.ItemName, p.FoodName, p.FoodNameCamel, p.Food, p.Name),
		Quantity: qty,
		Day:      strings.TrimSpace(p.Day),
		Total:    p.Total,
	}
}

// menuPayload accepts menu fields under their legacy names. The first
// alias present wins, even when its value is zero.
type menuPayload struct {
	Name          string   `json:"name"`
	ItemName      string   `json:"item_name"`
	FoodName      string   `json:"food_name"`
	FoodNameCamel string   `json:"foodName"`
	Food          string   `json:"food"`
	Price         *float64 `json:"price"`
	SellingPrice  *float64 `json:"selling_price"`
	SellingCamel  *float64 `json:"sellingPrice"`
	CostPrice     *float64 `json:"cost_price"`
	CostCamel     *float64 `json:"costPrice"`
	Cost          *float64 `json:"cost"`
}

func (p *menuPayload) normalize() MenuItemRequest {
	return MenuItemRequest{
		Name:      firstNonEmpty(p.Name, p.ItemName, p.FoodName, p.FoodNameCamel, p.Food),
		Price:     firstSet(p.Price, p.SellingPrice, p.SellingCamel),
		CostPrice: firstSet(p.CostPrice, p.CostCamel, p.Cost),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstSet(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// decodeJSON reads a bounded JSON body into dst. ok is false when a 400
// has already been written.
func decodeJSON(rw *ResponseWriter, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON body")
		return false
	}
	return true
}

func dateFieldError(field, value string) *validation.RequestValidationError {
	return validation.NewFieldError(field, "calendar_date", field+" must be a date in YYYY-MM-DD format", value)
}
