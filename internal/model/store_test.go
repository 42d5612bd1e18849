package model

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/chf/internal/contracts"
)

var storeCatalog = contracts.Catalog{
	{Name: "max_ndvi_mean", Polarity: contracts.Positive},
	{Name: "condition_variability", Polarity: contracts.Negative},
}

func sampleModel() *contracts.Model {
	m := contracts.NewModel()
	m.Weights["101"] = contracts.StratumWeights{
		StratumID: "101",
		Weights: map[string]float64{
			"max_ndvi_mean":         0.6180339887498949,
			"condition_variability": 0.3819660112501051,
		},
	}
	m.Weights["9"] = contracts.StratumWeights{
		StratumID: "9",
		Weights: map[string]float64{
			"max_ndvi_mean":         0.0,
			"condition_variability": 0.0,
		},
	}
	m.Scaling["101"] = map[string]contracts.ScalingFactor{
		"max_ndvi_mean":         {StratumID: "101", Indicator: "max_ndvi_mean", Min: 0.2, Max: 0.8},
		"condition_variability": {StratumID: "101", Indicator: "condition_variability", Min: 0.05, Max: 0.3},
	}
	m.Scaling["9"] = map[string]contracts.ScalingFactor{
		"max_ndvi_mean":         {StratumID: "9", Indicator: "max_ndvi_mean", Min: 0.4, Max: 0.4},
		"condition_variability": {StratumID: "9", Indicator: "condition_variability", Min: 0.1, Max: 0.1},
	}
	return m
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), storeCatalog)
	original := sampleModel()

	require.NoError(t, s.Save(original))

	loaded, err := s.Load()
	require.NoError(t, err)

	// Full precision survives the CSV round trip.
	assert.Equal(t, original.Weights, loaded.Weights)
	assert.Equal(t, original.Scaling, loaded.Scaling)
}

func TestStoreSaveDeterministic(t *testing.T) {
	s := NewStore(t.TempDir(), storeCatalog)
	m := sampleModel()

	require.NoError(t, s.Save(m))
	first, err := os.ReadFile(s.WeightsPath())
	require.NoError(t, err)
	firstScaling, err := os.ReadFile(s.ScalingPath())
	require.NoError(t, err)

	require.NoError(t, s.Save(m))
	second, err := os.ReadFile(s.WeightsPath())
	require.NoError(t, err)
	secondScaling, err := os.ReadFile(s.ScalingPath())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstScaling, secondScaling)
}

func TestStoreSortsStrataNumerically(t *testing.T) {
	s := NewStore(t.TempDir(), storeCatalog)
	require.NoError(t, s.Save(sampleModel()))

	data, err := os.ReadFile(s.WeightsPath())
	require.NoError(t, err)

	// "9" sorts before "101" numerically.
	lines := string(data)
	assert.Regexp(t, `(?s)^Strata_ID,.*\n9,.*\n101,`, lines)
}

func TestStoreLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir(), storeCatalog)

	_, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrModelMissing)
}

func TestStoreLoadMissingScaling(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, storeCatalog)
	require.NoError(t, s.Save(sampleModel()))
	require.NoError(t, os.Remove(s.ScalingPath()))

	_, err := s.Load()
	assert.ErrorIs(t, err, contracts.ErrModelMissing)
}
