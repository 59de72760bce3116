// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package boost

import (
	"context"
	"errors"
	"math"
	"testing"
)

// stepData builds rows where the target jumps from 10 to 30 once the
// first feature passes 20; the second feature is noise.
func stepData(n int) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i), float64((i * 7) % 5)}
		if i < 20 {
			y[i] = 10
		} else {
			y[i] = 30
		}
	}
	return X, y
}

func TestTrainConstantTargetPredictsMean(t *testing.T) {
	X := make([][]float64, 30)
	y := make([]float64, 30)
	for i := range X {
		X[i] = []float64{float64(i), float64(i % 7)}
		y[i] = 10
	}

	m, err := Train(context.Background(), X, y, DefaultConfig())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if got := m.Predict([]float64{31, 3}); got != 10 {
		t.Errorf("Predict = %v, want exactly 10", got)
	}
	if m.NumTrees() != 600 {
		t.Errorf("NumTrees = %d, want 600", m.NumTrees())
	}
}

func TestTrainLearnsStep(t *testing.T) {
	X, y := stepData(50)
	cfg := DefaultConfig()
	cfg.MinChildSamples = 5

	m, err := Train(context.Background(), X, y, cfg)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if low := m.Predict([]float64{5, 0}); math.Abs(low-10) > 1 {
		t.Errorf("Predict(low) = %v, want about 10", low)
	}
	if high := m.Predict([]float64{45, 0}); math.Abs(high-30) > 1 {
		t.Errorf("Predict(high) = %v, want about 30", high)
	}
}

func TestTrainDeterministic(t *testing.T) {
	X, y := stepData(45)
	cfg := DefaultConfig()
	cfg.MinChildSamples = 3

	m1, err := Train(context.Background(), X, y, cfg)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	m2, err := Train(context.Background(), X, y, cfg)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	for _, x := range [][]float64{{0, 1}, {19.5, 2}, {44, 4}, {100, 0}} {
		a, b := m1.Predict(x), m2.Predict(x)
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("Predict(%v) differs across runs: %v vs %v", x, a, b)
		}
	}
}

func TestTrainMinChildSamplesBlocksSplits(t *testing.T) {
	X, y := stepData(30)
	// 30 rows sampled at 0.9 leaves 27, which cannot hold two leaves of 20.
	m, err := Train(context.Background(), X, y, DefaultConfig())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	for _, tr := range m.trees {
		if len(tr.nodes) != 1 {
			t.Fatalf("expected stump-only trees, found %d nodes", len(tr.nodes))
		}
	}
}

func TestTrainMaxLeaves(t *testing.T) {
	X, y := stepData(60)
	for i := range y {
		y[i] = float64(i * i % 17)
	}
	cfg := DefaultConfig()
	cfg.MinChildSamples = 1
	cfg.MaxLeaves = 4
	cfg.Rounds = 5

	m, err := Train(context.Background(), X, y, cfg)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	for _, tr := range m.trees {
		leaves := 0
		for _, n := range tr.nodes {
			if n.left < 0 {
				leaves++
			}
		}
		if leaves > 4 {
			t.Errorf("tree has %d leaves, want <= 4", leaves)
		}
	}
}

func TestTrainErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := Train(ctx, nil, nil, DefaultConfig()); !errors.Is(err, ErrNoRows) {
		t.Errorf("empty input error = %v, want ErrNoRows", err)
	}
	if _, err := Train(ctx, [][]float64{{1}, {2}}, []float64{1}, DefaultConfig()); !errors.Is(err, ErrShape) {
		t.Errorf("target mismatch error = %v, want ErrShape", err)
	}
	if _, err := Train(ctx, [][]float64{{1, 2}, {2}}, []float64{1, 2}, DefaultConfig()); !errors.Is(err, ErrShape) {
		t.Errorf("ragged rows error = %v, want ErrShape", err)
	}

	bad := DefaultConfig()
	bad.LearningRate = 0
	if _, err := Train(ctx, [][]float64{{1}}, []float64{1}, bad); err == nil {
		t.Error("expected config validation error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	X, y := stepData(30)
	if _, err := Train(cancelled, X, y, DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context error = %v, want context.Canceled", err)
	}
}

func TestSubsample(t *testing.T) {
	if got := sampleSize(11, 0.9); got != 9 {
		t.Errorf("sampleSize(11, 0.9) = %d, want 9", got)
	}
	if got := sampleSize(1, 0.5); got != 1 {
		t.Errorf("sampleSize(1, 0.5) = %d, want 1", got)
	}
}
