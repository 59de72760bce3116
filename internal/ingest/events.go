// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package ingest

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// TopicTransactionRecorded carries TransactionRecorded events.
const TopicTransactionRecorded = "transaction.recorded"

// TransactionRecorded announces a new ledger line.
type TransactionRecorded struct {
	TransactionID int64     `json:"transaction_id"`
	ItemName      string    `json:"item_name"`
	Quantity      float64   `json:"quantity"`
	Day           string    `json:"day"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Validate checks the fields a consumer relies on.
func (e *TransactionRecorded) Validate() error {
	if e.ItemName == "" {
		return fmt.Errorf("item_name is required")
	}
	return nil
}

// SerializeEvent encodes an event for the bus.
func SerializeEvent(e *TransactionRecorded) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	return json.Marshal(e)
}

// DeserializeEvent decodes and validates a bus payload.
func DeserializeEvent(data []byte) (*TransactionRecorded, error) {
	var e TransactionRecorded
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	return &e, nil
}
