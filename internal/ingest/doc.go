// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

/*
Package ingest carries ledger change notifications inside the process.

Recording a transaction publishes a TransactionRecorded message on an
in-memory Watermill pub/sub. The InvalidationService subscribes to it and
drops the affected item's cached model predictions, so the next forecast
retrains on the new sale instead of waiting for the cache TTL.

# Components

  - NewBus: the Go-channel pub/sub shared by publisher and subscriber
  - Publisher: JSON-encodes events and publishes through a circuit breaker
  - InvalidationService: a suture.Service consuming the topic

Publishing is best effort. The ledger row is already committed when the
event is sent, so a failed publish costs at most a stale cache entry until
its TTL expires, and callers log the error instead of failing the request.
*/
package ingest
