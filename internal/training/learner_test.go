package training

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/chf/internal/contracts"
	"github.com/haritlabs/chf/pkg/logger"
)

var learnerCatalog = contracts.Catalog{
	{Name: "max_ndvi_mean", Polarity: contracts.Positive},
	{Name: "rainy_days_mean", Polarity: contracts.Positive},
	{Name: "condition_variability", Polarity: contracts.Negative},
}

// stubSource serves in-memory year tables.
type stubSource struct {
	tables map[int]*contracts.YearTable
}

func (s *stubSource) LoadYear(year int) (*contracts.YearTable, error) {
	table, ok := s.tables[year]
	if !ok {
		return nil, fmt.Errorf("%w: year %d", contracts.ErrYearUnavailable, year)
	}
	return table, nil
}

func obs(unit, stratum string, year int, ndvi, rainy, variability float64) contracts.ObservationRecord {
	return contracts.ObservationRecord{
		UnitID:    unit,
		StratumID: stratum,
		Year:      year,
		Values: map[string]float64{
			"max_ndvi_mean":         ndvi,
			"rainy_days_mean":       rainy,
			"condition_variability": variability,
		},
	}
}

func trainingSource() *stubSource {
	return &stubSource{tables: map[int]*contracts.YearTable{
		2018: {Year: 2018, Records: []contracts.ObservationRecord{
			obs("U_1", "101", 2018, 0.20, 5.0, 0.30),
			obs("U_2", "101", 2018, 0.80, 5.0, 0.10),
			obs("U_3", "205", 2018, 0.55, 8.0, 0.20),
		}},
		2019: {Year: 2019, Records: []contracts.ObservationRecord{
			obs("U_1", "101", 2019, 0.45, 5.0, 0.05),
			obs("U_2", "101", 2019, 0.60, 5.0, 0.25),
			obs("U_3", "205", 2019, 0.35, 12.0, 0.40),
		}},
	}}
}

func TestLearn(t *testing.T) {
	l := NewLearner(learnerCatalog, trainingSource(), logger.Nop())

	model, err := l.Learn(context.Background(), []int{2018, 2019})
	require.NoError(t, err)
	require.False(t, model.Empty())

	assert.Equal(t, []string{"101", "205"}, model.Strata())

	// rainy_days_mean is constant 5.0 in stratum 101 across both
	// years: degenerate, weight 0, remaining weights carry the mass.
	w101, s101, ok := model.StratumModel("101")
	require.True(t, ok)
	assert.Equal(t, 0.0, w101.Weights["rainy_days_mean"])
	assert.InDelta(t, 1.0, w101.Sum(), 1e-12)
	assert.Equal(t, 5.0, s101["rainy_days_mean"].Min)
	assert.Equal(t, 5.0, s101["rainy_days_mean"].Max)

	// Pooled bounds span both years.
	assert.Equal(t, 0.20, s101["max_ndvi_mean"].Min)
	assert.Equal(t, 0.80, s101["max_ndvi_mean"].Max)

	// Varying in stratum 205, degenerate in 101: weights are strictly
	// per-stratum.
	w205, s205, ok := model.StratumModel("205")
	require.True(t, ok)
	assert.Greater(t, w205.Weights["rainy_days_mean"], 0.0)
	assert.InDelta(t, 1.0, w205.Sum(), 1e-12)
	assert.Equal(t, 8.0, s205["rainy_days_mean"].Min)
	assert.Equal(t, 12.0, s205["rainy_days_mean"].Max)

	// min <= max everywhere
	for _, stratumID := range model.Strata() {
		for _, sf := range model.Scaling[stratumID] {
			assert.LessOrEqual(t, sf.Min, sf.Max)
		}
	}
}

func TestLearnSkipsUnavailableYears(t *testing.T) {
	l := NewLearner(learnerCatalog, trainingSource(), logger.Nop())

	model, err := l.Learn(context.Background(), []int{2017, 2018, 2019, 2020})
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "205"}, model.Strata())
}

func TestLearnNoTrainingData(t *testing.T) {
	l := NewLearner(learnerCatalog, &stubSource{tables: map[int]*contracts.YearTable{}}, logger.Nop())

	_, err := l.Learn(context.Background(), []int{2018, 2019})
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrNoTrainingData)
}

func TestLearnDeterministic(t *testing.T) {
	l := NewLearner(learnerCatalog, trainingSource(), logger.Nop())

	first, err := l.Learn(context.Background(), []int{2018, 2019})
	require.NoError(t, err)
	second, err := l.Learn(context.Background(), []int{2018, 2019})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLearnCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLearner(learnerCatalog, trainingSource(), logger.Nop())
	_, err := l.Learn(ctx, []int{2018})
	assert.ErrorIs(t, err, context.Canceled)
}
