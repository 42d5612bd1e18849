package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/pkg/logger"
)

// Calculator applies a trained model to per-year indicator tables and
// produces composite scores. The model artifacts are consumed
// verbatim: scaling factors and weights are never recomputed here.
type Calculator struct {
	catalog contracts.Catalog
	source  contracts.TableSource
	logger  *logger.Logger
}

// NewCalculator creates a calculator over the given table source.
func NewCalculator(catalog contracts.Catalog, source contracts.TableSource, log *logger.Logger) *Calculator {
	return &Calculator{
		catalog: catalog,
		source:  source,
		logger:  log,
	}
}

// Score computes composite scores for the requested years. Years are
// processed in ascending order; within a year, output rows keep the
// input table's row order. Years whose table is unavailable are
// skipped with a warning, as are units whose stratum has no complete
// model. Returns contracts.ErrModelMissing when the model is empty.
func (c *Calculator) Score(ctx context.Context, m *contracts.Model, years []int) ([]contracts.ScoreRecord, error) {
	if m.Empty() {
		return nil, fmt.Errorf("%w: model has no trained strata", contracts.ErrModelMissing)
	}

	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)

	var records []contracts.ScoreRecord

	for _, year := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table, err := c.source.LoadYear(year)
		if err != nil {
			if errors.Is(err, contracts.ErrYearUnavailable) {
				c.logger.WithField("year", year).Warn("Scoring year skipped: indicator table not found")
				continue
			}
			return nil, fmt.Errorf("failed to load scoring year %d: %w", year, err)
		}

		yearRecords := c.scoreYear(m, table)
		records = append(records, yearRecords...)

		c.logger.WithFields(map[string]interface{}{
			"year":   year,
			"units":  len(table.Records),
			"scored": len(yearRecords),
		}).Info("Year scored")
	}

	return records, nil
}

// scoreYear scores one year's table against the model.
func (c *Calculator) scoreYear(m *contracts.Model, table *contracts.YearTable) []contracts.ScoreRecord {
	means := c.stratumMeans(table)

	scored := make([]contracts.ScoreRecord, 0, len(table.Records))
	skippedStrata := make(map[string]struct{})

	for _, rec := range table.Records {
		weights, scaling, ok := m.StratumModel(rec.StratumID)
		if !ok {
			if _, warned := skippedStrata[rec.StratumID]; !warned {
				skippedStrata[rec.StratumID] = struct{}{}
				c.logger.WithFields(map[string]interface{}{
					"year":    table.Year,
					"stratum": rec.StratumID,
				}).Warn("Stratum has no trained model, units skipped")
			}
			continue
		}

		score := c.scoreUnit(rec, weights, scaling, means[rec.StratumID])
		scored = append(scored, contracts.ScoreRecord{
			Year:      table.Year,
			UnitID:    rec.UnitID,
			StratumID: rec.StratumID,
			Score:     score,
		})
	}

	return scored
}

// scoreUnit computes one unit's weighted sum. Missing values are
// imputed with the current year's stratum mean; zero-weight
// indicators contribute nothing and are not evaluated at all.
func (c *Calculator) scoreUnit(rec contracts.ObservationRecord, weights contracts.StratumWeights, scaling map[string]contracts.ScalingFactor, means map[string]float64) float64 {
	var score float64

	for _, ind := range c.catalog {
		w := weights.Weights[ind.Name]
		if w == 0 {
			continue
		}

		sf, ok := scaling[ind.Name]
		if !ok {
			// Weights and scaling come from the same training run, so
			// a weighted indicator always has a scaling row. Guard
			// against hand-edited artifacts anyway.
			continue
		}

		v, observed := rec.Value(ind.Name)
		if !observed {
			mean, hasMean := means[ind.Name]
			if !hasMean {
				// Indicator unobserved across the whole stratum this
				// year: nothing to impute from, contributes nothing.
				continue
			}
			v = mean
		}

		score += w * ind.Normalize(v, sf.Min, sf.Max)
	}

	return score
}

// stratumMeans precomputes the per-stratum, per-indicator mean of the
// current year's observed values, the imputation source at scoring
// time. Indicators with no observed values in a stratum are absent
// from the inner map.
func (c *Calculator) stratumMeans(table *contracts.YearTable) map[string]map[string]float64 {
	sums := make(map[string]map[string]float64)
	counts := make(map[string]map[string]int)

	for _, rec := range table.Records {
		if sums[rec.StratumID] == nil {
			sums[rec.StratumID] = make(map[string]float64, len(c.catalog))
			counts[rec.StratumID] = make(map[string]int, len(c.catalog))
		}
		for _, ind := range c.catalog {
			if v, ok := rec.Value(ind.Name); ok && !math.IsNaN(v) {
				sums[rec.StratumID][ind.Name] += v
				counts[rec.StratumID][ind.Name]++
			}
		}
	}

	means := make(map[string]map[string]float64, len(sums))
	for stratumID, indicatorSums := range sums {
		means[stratumID] = make(map[string]float64, len(indicatorSums))
		for name, sum := range indicatorSums {
			if n := counts[stratumID][name]; n > 0 {
				means[stratumID][name] = sum / float64(n)
			}
		}
	}
	return means
}
