// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package insights

import (
	"github.com/shopspring/decimal"
)

// Severity indicates how urgently an alert needs attention.
type Severity string

// Severity levels.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// AlertType identifies what an alert is about.
type AlertType string

// Alert types.
const (
	AlertTypeCost   AlertType = "cost"
	AlertTypeWaste  AlertType = "waste"
	AlertTypeDemand AlertType = "demand"
)

const (
	// DefaultDangerThreshold is the waste cost above which the cost alert
	// escalates to danger.
	DefaultDangerThreshold = 200.0

	// CurrencySymbol prefixes money in alert messages.
	CurrencySymbol = "₹"

	maxAlertsPerKind = 5
	maxAlerts        = 12
)

// Alert is one entry of the kitchen alert feed.
type Alert struct {
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
}

// Alerts orders the feed: the cost alert first, then up to five waste
// warnings, then up to five demand notices.
func Alerts(ins Insights, waste WasteReport, dangerThreshold float64) []Alert {
	severity := SeverityInfo
	if waste.EstimatedWasteCost > dangerThreshold {
		severity = SeverityDanger
	}

	alerts := []Alert{{
		Type:     AlertTypeCost,
		Severity: severity,
		Title:    "Estimated Waste Cost Risk",
		Message:  "Potential loss: " + CurrencySymbol + decimal.NewFromFloat(waste.EstimatedWasteCost).StringFixed(2),
	}}

	for i, in := range ins.WasteRisk {
		if i == maxAlertsPerKind {
			break
		}
		alerts = append(alerts, Alert{Type: AlertTypeWaste, Severity: SeverityWarning, Title: in.Title, Message: in.Message})
	}
	for i, in := range ins.HighDemand {
		if i == maxAlertsPerKind {
			break
		}
		alerts = append(alerts, Alert{Type: AlertTypeDemand, Severity: SeverityInfo, Title: in.Title, Message: in.Message})
	}

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}
