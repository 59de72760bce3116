// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package validation

import (
	"math"
	"strings"
	"testing"
)

type eventInput struct {
	Date   string  `json:"event_date" validate:"required,calendar_date"`
	Type   string  `json:"event_type" validate:"required,max=64"`
	Title  string  `json:"title" validate:"required,max=200"`
	Impact float64 `json:"impact" validate:"finite"`
}

type quantityInput struct {
	Item     string  `json:"item_name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=1"`
	Note     string  `json:"-" validate:"omitempty,min=3"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	in := eventInput{Date: "2026-01-26", Type: "Public Holiday", Title: "Republic Day", Impact: -1.5}
	if err := ValidateStruct(&in); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_CalendarDate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2026-01-26", true},
		{"2024-02-29", true},
		{"2026-02-29", false},
		{"2026-1-26", false},
		{"26-01-2026", false},
		{"2026-01-26T00:00:00Z", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			in := eventInput{Date: tt.date, Type: "Exam", Title: "x"}
			err := ValidateStruct(&in)
			if (err == nil) != tt.valid {
				t.Errorf("date %q valid = %v, want %v (err %v)", tt.date, err == nil, tt.valid, err)
			}
			if err != nil && err.Errors()[0].Field() != "event_date" {
				t.Errorf("field = %q, want event_date", err.Errors()[0].Field())
			}
		})
	}
}

func TestValidateStruct_Finite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		in := eventInput{Date: "2026-01-26", Type: "Exam", Title: "x", Impact: v}
		err := ValidateStruct(&in)
		if err == nil {
			t.Errorf("impact %v accepted", v)
			continue
		}
		if got := err.Error(); got != "impact must be a finite number" {
			t.Errorf("message = %q", got)
		}
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	in := eventInput{Date: "2026-01-26", Type: strings.Repeat("x", 65), Title: ""}
	err := ValidateStruct(&in)
	if err == nil {
		t.Fatal("expected errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(err.Errors()), err)
	}
	want := "event_type must be at most 64 characters; title is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	q := quantityInput{Item: "Tea", Quantity: 0, Note: "ab"}
	qerr := ValidateStruct(&q)
	if qerr == nil || len(qerr.Errors()) != 2 {
		t.Fatalf("quantity errors = %v", qerr)
	}
	if qerr.Errors()[0].Error() != "quantity must be greater than or equal to 1" {
		t.Errorf("quantity message = %q", qerr.Errors()[0].Error())
	}
	if qerr.Errors()[1].Field() != "Note" || qerr.Errors()[1].Param() != "3" {
		t.Errorf("json:\"-\" field = %q param %q", qerr.Errors()[1].Field(), qerr.Errors()[1].Param())
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&eventInput{Date: "bad", Type: "Exam", Title: "x"}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Details["field"] != "event_date" || single.Details["tag"] != "calendar_date" {
		t.Errorf("single = %+v", single)
	}

	multi := ValidateStruct(&eventInput{}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("multi details = %+v", multi.Details)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty = %+v", empty)
	}
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("as_of", "calendar_date", "as_of must be a date in YYYY-MM-DD format", "yesterday")
	if err.Error() != "as_of must be a date in YYYY-MM-DD format" {
		t.Errorf("Error() = %q", err.Error())
	}
	api := err.ToAPIError()
	if api.Details["value"] != "yesterday" || api.Details["field"] != "as_of" {
		t.Errorf("details = %+v", api.Details)
	}
}
