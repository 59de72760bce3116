// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package ingest

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
)

// busBuffer bounds each subscriber's output channel.
const busBuffer = 256

// NewBus creates the in-process pub/sub. Messages published while no
// subscriber is attached are dropped.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(logger zerolog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: busBuffer,
	}, NewWatermillLogger(logger.With().Str("component", "ingest-bus").Logger()))
}
