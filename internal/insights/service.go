// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/kitchencast/internal/forecast"
)

// Forecaster produces the live forecast the insights are derived from.
type Forecaster interface {
	Compute(ctx context.Context, asOf time.Time) (*forecast.Forecast, error)
}

// CostSource supplies menu cost prices keyed by item name.
type CostSource interface {
	MenuCosts(ctx context.Context) (map[string]float64, error)
}

// Service derives insights, waste cost and alerts from a live forecast.
type Service struct {
	forecaster      Forecaster
	costs           CostSource
	dangerThreshold float64
}

// NewService creates a Service. A non-positive threshold selects
// DefaultDangerThreshold.
func NewService(f Forecaster, costs CostSource, dangerThreshold float64) *Service {
	if dangerThreshold <= 0 {
		dangerThreshold = DefaultDangerThreshold
	}
	return &Service{forecaster: f, costs: costs, dangerThreshold: dangerThreshold}
}

// Insights groups the forecast made as of asOf.
func (s *Service) Insights(ctx context.Context, asOf time.Time) (Insights, error) {
	fc, err := s.forecaster.Compute(ctx, asOf)
	if err != nil {
		return Insights{}, err
	}
	return Build(fc.Forecasts), nil
}

// WasteCost values the overproduction risk in the forecast made as of asOf.
func (s *Service) WasteCost(ctx context.Context, asOf time.Time) (WasteReport, error) {
	fc, err := s.forecaster.Compute(ctx, asOf)
	if err != nil {
		return WasteReport{}, err
	}
	return s.waste(ctx, fc.Forecasts)
}

// Alerts builds the alert feed from one forecast computation.
func (s *Service) Alerts(ctx context.Context, asOf time.Time) ([]Alert, error) {
	fc, err := s.forecaster.Compute(ctx, asOf)
	if err != nil {
		return nil, err
	}
	waste, err := s.waste(ctx, fc.Forecasts)
	if err != nil {
		return nil, err
	}
	return Alerts(Build(fc.Forecasts), waste, s.dangerThreshold), nil
}

func (s *Service) waste(ctx context.Context, results []forecast.Result) (WasteReport, error) {
	costs, err := s.costs.MenuCosts(ctx)
	if err != nil {
		return WasteReport{}, fmt.Errorf("read menu costs: %w", err)
	}
	return WasteCost(results, costs), nil
}
