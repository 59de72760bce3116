// Kitchencast - Food-Service Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kitchencast

package boost

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Training errors.
var (
	ErrNoRows = errors.New("boost: no training rows")
	ErrShape  = errors.New("boost: inconsistent feature matrix")
)

// minGain is the smallest loss reduction accepted for a split. It keeps
// float noise from splitting leaves whose gradients already cancel out.
const minGain = 1e-12

// Model is a trained ensemble. It is immutable and safe for concurrent Predict calls.
type Model struct {
	base     float64
	features int
	trees    []tree
}

// Predict returns the model output for one feature vector.
// x must have the same width as the training rows.
func (m *Model) Predict(x []float64) float64 {
	p := m.base
	for i := range m.trees {
		p += m.trees[i].predict(x)
	}
	return p
}

// NumTrees returns the number of fitted trees.
func (m *Model) NumTrees() int { return len(m.trees) }

// NumFeatures returns the expected feature vector width.
func (m *Model) NumFeatures() int { return m.features }

// Train fits a model to X (rows x features) and targets y.
//
// The initial prediction is the mean of y. Each round fits one tree to the
// current residual gradients on a seeded row and column subsample, then
// updates the running prediction of every row. ctx is checked between rounds.
func Train(ctx context.Context, X [][]float64, y []float64, cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := len(X)
	if n == 0 {
		return nil, ErrNoRows
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: %d rows but %d targets", ErrShape, n, len(y))
	}
	nf := len(X[0])
	if nf == 0 {
		return nil, fmt.Errorf("%w: zero features", ErrShape)
	}
	for i, row := range X {
		if len(row) != nf {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrShape, i, len(row), nf)
		}
	}

	var base float64
	for _, v := range y {
		base += v
	}
	base /= float64(n)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}
	grad := make([]float64, n)

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic subsampling, not security
	rowK := sampleSize(n, cfg.RowSubsample)
	colK := sampleSize(nf, cfg.ColSubsample)

	g := &grower{X: X, grad: grad, cfg: cfg}
	m := &Model{base: base, features: nf, trees: make([]tree, 0, cfg.Rounds)}

	for r := 0; r < cfg.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Squared loss: gradient is pred - y, hessian is 1.
		for i := range y {
			grad[i] = pred[i] - y[i]
		}
		t := g.grow(subsample(rng, n, rowK), subsample(rng, nf, colK))
		for i := range X {
			pred[i] += t.predict(X[i])
		}
		m.trees = append(m.trees, t)
	}
	return m, nil
}

func sampleSize(n int, frac float64) int {
	k := int(float64(n) * frac)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// subsample returns k distinct indices of [0, n) in ascending order.
func subsample(rng *rand.Rand, n, k int) []int {
	if k >= n {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	picked := rng.Perm(n)[:k]
	sort.Ints(picked)
	return picked
}

type node struct {
	feature   int
	threshold float64
	left      int // -1 marks a leaf
	right     int
	value     float64
}

type tree struct {
	nodes []node
}

func (t *tree) predict(x []float64) float64 {
	i := 0
	for {
		n := &t.nodes[i]
		if n.left < 0 {
			return n.value
		}
		if x[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

type split struct {
	ok        bool
	feature   int
	threshold float64
	gain      float64
}

type leaf struct {
	node int
	rows []int
	sumG float64
	best split
}

type grower struct {
	X    [][]float64
	grad []float64
	cfg  Config
	cols []int
}

// grow builds one leaf-wise tree over the sampled rows and columns.
func (g *grower) grow(rows, cols []int) tree {
	g.cols = cols
	t := tree{nodes: []node{{left: -1, right: -1}}}
	open := []*leaf{g.newLeaf(0, rows)}
	closed := make([]*leaf, 0, g.cfg.MaxLeaves)

	for len(open)+len(closed) < g.cfg.MaxLeaves {
		pick := -1
		for i, l := range open {
			if l.best.ok && (pick < 0 || l.best.gain > open[pick].best.gain) {
				pick = i
			}
		}
		if pick < 0 {
			break
		}
		l := open[pick]
		open = append(open[:pick], open[pick+1:]...)

		var leftRows, rightRows []int
		for _, r := range l.rows {
			if g.X[r][l.best.feature] <= l.best.threshold {
				leftRows = append(leftRows, r)
			} else {
				rightRows = append(rightRows, r)
			}
		}

		li, ri := len(t.nodes), len(t.nodes)+1
		t.nodes = append(t.nodes, node{left: -1, right: -1}, node{left: -1, right: -1})
		t.nodes[l.node].feature = l.best.feature
		t.nodes[l.node].threshold = l.best.threshold
		t.nodes[l.node].left = li
		t.nodes[l.node].right = ri

		open = append(open, g.newLeaf(li, leftRows), g.newLeaf(ri, rightRows))
	}

	closed = append(closed, open...)
	for _, l := range closed {
		t.nodes[l.node].value = -g.cfg.LearningRate * l.sumG / (float64(len(l.rows)) + g.cfg.Lambda)
	}
	return t
}

func (g *grower) newLeaf(nodeIdx int, rows []int) *leaf {
	l := &leaf{node: nodeIdx, rows: rows}
	for _, r := range rows {
		l.sumG += g.grad[r]
	}
	l.best = g.bestSplit(rows, l.sumG)
	return l
}

// bestSplit scans every sampled feature for the threshold with the largest
// gain G_L^2/(n_L+lambda) + G_R^2/(n_R+lambda) - G^2/(n+lambda).
func (g *grower) bestSplit(rows []int, sumG float64) split {
	minChild := g.cfg.MinChildSamples
	n := len(rows)
	if n < 2*minChild {
		return split{}
	}
	lambda := g.cfg.Lambda
	parent := sumG * sumG / (float64(n) + lambda)

	best := split{gain: minGain}
	order := make([]int, n)
	for _, f := range g.cols {
		copy(order, rows)
		sort.SliceStable(order, func(a, b int) bool {
			return g.X[order[a]][f] < g.X[order[b]][f]
		})

		var gl float64
		for i := 0; i < n-1; i++ {
			gl += g.grad[order[i]]
			nl, nr := i+1, n-i-1
			if nr < minChild {
				break
			}
			if nl < minChild {
				continue
			}
			v, next := g.X[order[i]][f], g.X[order[i+1]][f]
			if v == next {
				continue
			}
			gr := sumG - gl
			gain := gl*gl/(float64(nl)+lambda) + gr*gr/(float64(nr)+lambda) - parent
			if gain > best.gain {
				thr := v + (next-v)/2
				if thr >= next {
					thr = v
				}
				best = split{ok: true, feature: f, threshold: thr, gain: gain}
			}
		}
	}
	return best
}
