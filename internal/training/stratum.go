package training

import (
	"math"

	"github.com/haritlabs/chf/internal/contracts"
)

// column collects one indicator's values across the stratum pool in
// record order, NaN where missing.
func column(records []contracts.ObservationRecord, indicator string) []float64 {
	values := make([]float64, len(records))
	for i, rec := range records {
		if v, ok := rec.Value(indicator); ok {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}

// imputeMean replaces missing values with the mean of the non-missing
// values of the same column. The fill never borrows statistics from
// other indicators or other strata. Returns the filled column and the
// count of originally observed values.
func imputeMean(values []float64) ([]float64, int) {
	var sum float64
	observed := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			observed++
		}
	}

	if observed == len(values) {
		return values, observed
	}
	if observed == 0 {
		return values, 0
	}

	mean := sum / float64(observed)
	filled := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			filled[i] = mean
		} else {
			filled[i] = v
		}
	}
	return filled, observed
}

// minMax returns the bounds of a fully populated column.
func minMax(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// divergence computes the entropy-based divergence (1 - E) of one
// indicator column within a stratum pool. Degenerate inputs resolve
// to 0.0 by definition rather than erroring:
//   - zero variance (max == min)
//   - zero normalized mass (every value at the polarity's worst bound)
//   - single-sample pool (k = 1/ln(n) undefined for n = 1)
func divergence(ind contracts.Indicator, values []float64, min, max float64) float64 {
	if max == min {
		return 0.0
	}

	normalized := make([]float64, len(values))
	var total float64
	for i, v := range values {
		normalized[i] = ind.Normalize(v, min, max)
		total += normalized[i]
	}

	if total == 0 {
		return 0.0
	}

	n := len(values)
	if n <= 1 {
		return 0.0
	}

	k := 1.0 / math.Log(float64(n))

	// p*ln(p) with p == 0 contributing nothing (lim x->0 x*ln(x) = 0)
	var entropySum float64
	for _, norm := range normalized {
		p := norm / total
		if p > 0 {
			entropySum += p * math.Log(p)
		}
	}

	e := -k * entropySum
	return 1.0 - e
}

// stratumResult is one stratum's trained slice of the model.
type stratumResult struct {
	weights contracts.StratumWeights
	scaling []contracts.ScalingFactor // catalog order
	pooledN int
	warns   []string // indicators with no observed values at all
}

// learnStratum derives scaling factors and entropy weights for one
// stratum from its pooled training records. Pure: depends only on the
// stratum's own data, so strata can be processed in any order.
func learnStratum(catalog contracts.Catalog, stratumID string, records []contracts.ObservationRecord) stratumResult {
	res := stratumResult{
		weights: contracts.StratumWeights{
			StratumID: stratumID,
			Weights:   make(map[string]float64, len(catalog)),
		},
		scaling: make([]contracts.ScalingFactor, 0, len(catalog)),
		pooledN: len(records),
	}

	divergences := make(map[string]float64, len(catalog))

	for _, ind := range catalog {
		values := column(records, ind.Name)
		filled, observed := imputeMean(values)

		var min, max float64
		if observed == 0 {
			// Nothing to scale against; force the degenerate path so
			// artifacts stay numeric and the weight collapses to zero.
			res.warns = append(res.warns, ind.Name)
			min, max = 0, 0
		} else {
			min, max = minMax(filled)
		}

		// Scaling factors persist regardless of degeneracy.
		res.scaling = append(res.scaling, contracts.ScalingFactor{
			StratumID: stratumID,
			Indicator: ind.Name,
			Min:       min,
			Max:       max,
		})

		divergences[ind.Name] = divergence(ind, filled, min, max)
	}

	var totalDivergence float64
	for _, d := range divergences {
		totalDivergence += d
	}

	for _, ind := range catalog {
		if totalDivergence == 0 {
			// All indicators degenerate: all-zero weights, not equal
			// weights. Consumers tolerate the broken sum-to-1.
			res.weights.Weights[ind.Name] = 0.0
		} else {
			res.weights.Weights[ind.Name] = divergences[ind.Name] / totalDivergence
		}
	}

	return res
}
