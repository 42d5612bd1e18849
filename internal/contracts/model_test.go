package contracts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelStratumModel(t *testing.T) {
	m := NewModel()
	m.Weights["101"] = StratumWeights{
		StratumID: "101",
		Weights:   map[string]float64{"max_ndvi_mean": 0.6, "rainy_days_mean": 0.4},
	}
	m.Scaling["101"] = map[string]ScalingFactor{
		"max_ndvi_mean":   {StratumID: "101", Indicator: "max_ndvi_mean", Min: 0.1, Max: 0.9},
		"rainy_days_mean": {StratumID: "101", Indicator: "rainy_days_mean", Min: 5, Max: 5},
	}
	// Stratum with weights but no scaling rows
	m.Weights["102"] = StratumWeights{StratumID: "102", Weights: map[string]float64{}}

	w, s, ok := m.StratumModel("101")
	require.True(t, ok)
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.True(t, s["rainy_days_mean"].Degenerate())
	assert.False(t, s["max_ndvi_mean"].Degenerate())

	_, _, ok = m.StratumModel("102")
	assert.False(t, ok, "stratum without scaling rows is incomplete")

	_, _, ok = m.StratumModel("999")
	assert.False(t, ok)
}

func TestModelEmpty(t *testing.T) {
	var nilModel *Model
	assert.True(t, nilModel.Empty())
	assert.True(t, NewModel().Empty())

	m := NewModel()
	m.Weights["101"] = StratumWeights{StratumID: "101"}
	m.Scaling["101"] = map[string]ScalingFactor{}
	assert.False(t, m.Empty())
}

func TestSortStrataIDs(t *testing.T) {
	ids := []string{"102", "9", "101", "23"}
	SortStrataIDs(ids)
	assert.Equal(t, []string{"9", "23", "101", "102"}, ids)

	mixed := []string{"zoneB", "101", "zoneA"}
	SortStrataIDs(mixed)
	assert.Equal(t, []string{"101", "zoneA", "zoneB"}, mixed)
}

func TestObservationValue(t *testing.T) {
	r := ObservationRecord{
		UnitID:    "U_1",
		StratumID: "101",
		Year:      2018,
		Values: map[string]float64{
			"max_ndvi_mean":   0.75,
			"rainy_days_mean": math.NaN(),
		},
	}

	v, ok := r.Value("max_ndvi_mean")
	require.True(t, ok)
	assert.Equal(t, 0.75, v)

	_, ok = r.Value("rainy_days_mean")
	assert.False(t, ok, "NaN counts as missing")

	_, ok = r.Value("max_lswi_mean")
	assert.False(t, ok, "absent key counts as missing")
}
