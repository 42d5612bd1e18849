package contracts

import (
	"sort"
	"strconv"
)

// ScalingFactor holds the min/max observed for one indicator within
// one stratum across all training years. Persisted once per training
// run and consumed verbatim at scoring time; invariant: Min <= Max.
// Min == Max marks the indicator as degenerate for the stratum.
type ScalingFactor struct {
	StratumID string
	Indicator string
	Min       float64
	Max       float64
}

// Degenerate reports whether the indicator carried zero variance in
// the stratum's training pool.
func (s ScalingFactor) Degenerate() bool {
	return s.Min == s.Max
}

// StratumWeights holds one entropy-derived weight per catalog
// indicator for a single stratum. In the non-degenerate case the
// weights sum to 1.0; when the stratum's total divergence is zero all
// weights are 0.0 and consumers must tolerate that.
type StratumWeights struct {
	StratumID string
	Weights   map[string]float64
}

// Sum returns the total weight mass for the stratum.
func (w StratumWeights) Sum() float64 {
	var total float64
	for _, v := range w.Weights {
		total += v
	}
	return total
}

// Model is one immutable trained model version: weights plus scaling
// factors, both keyed by stratum.
type Model struct {
	Weights map[string]StratumWeights
	Scaling map[string]map[string]ScalingFactor // stratum -> indicator -> factor
}

// NewModel returns an empty model ready to be filled by training.
func NewModel() *Model {
	return &Model{
		Weights: make(map[string]StratumWeights),
		Scaling: make(map[string]map[string]ScalingFactor),
	}
}

// Empty reports whether the model carries no strata at all.
func (m *Model) Empty() bool {
	return m == nil || len(m.Weights) == 0 || len(m.Scaling) == 0
}

// StratumModel returns the weights and scaling rows for one stratum.
// The second return is false when either half is missing, in which
// case the stratum's units must be skipped at scoring time.
func (m *Model) StratumModel(stratumID string) (StratumWeights, map[string]ScalingFactor, bool) {
	w, okW := m.Weights[stratumID]
	s, okS := m.Scaling[stratumID]
	if !okW || !okS || len(s) == 0 {
		return StratumWeights{}, nil, false
	}
	return w, s, true
}

// Strata returns all stratum identifiers in the model, numeric-aware
// sorted so persisted artifacts are byte-stable across runs.
func (m *Model) Strata() []string {
	strata := make([]string, 0, len(m.Weights))
	for id := range m.Weights {
		strata = append(strata, id)
	}
	SortStrataIDs(strata)
	return strata
}

// SortStrataIDs sorts stratum identifiers numerically when both parse
// as integers, lexically otherwise.
func SortStrataIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
