// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

import "errors"

var (
	// ErrNoData is returned when a comparison has nothing to compare,
	// such as an archived date with no rows. A live forecast over an empty
	// window is not an error; it returns an empty Forecast.
	ErrNoData = errors.New("forecast: no data")

	// ErrNilSource is returned by NewEngine without a DataSource.
	ErrNilSource = errors.New("forecast: data source is required")
)
