// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package forecast

// Default classification bands around the baseline.
const (
	DefaultIncreaseRatio = 1.15
	DefaultReduceRatio   = 0.85
)

// Classify maps a prediction against its baseline. Above baseline*increase
// is Increase/HIGH_DEMAND, below baseline*reduce is Reduce/OVERPRODUCTION_RISK,
// and anything else, including values exactly on a band edge, is
// Maintain/STABLE.
func Classify(predicted, baseline, increase, reduce float64) (Suggestion, Tag) {
	switch {
	case predicted > baseline*increase:
		return SuggestIncrease, TagHighDemand
	case predicted < baseline*reduce:
		return SuggestReduce, TagOverproductionRisk
	default:
		return SuggestMaintain, TagStable
	}
}

// Confidence scores used by the engine.
const (
	ConfidenceHeuristic = 55
	confidenceSparse    = 60
	confidenceFair      = 75
	confidenceGood      = 85
	confidenceRich      = 92
)

// ConfidenceTier scores a model-branch prediction by how many usable rows
// trained it. It is a history-size tier, not a statistical interval.
func ConfidenceTier(historyPoints int) int {
	switch {
	case historyPoints >= 45:
		return confidenceRich
	case historyPoints >= 30:
		return confidenceGood
	case historyPoints >= 20:
		return confidenceFair
	default:
		return confidenceSparse
	}
}
