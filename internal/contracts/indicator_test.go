package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	require.Len(t, catalog, 8)

	// Order is part of the contract
	wantOrder := []string{
		"max_ndvi_mean",
		"max_lswi_mean",
		"max_backscatter_mean",
		"integrated_backscatter_mean",
		"integrated_fapar_mean",
		"rainy_days_mean",
		"adjusted_rainfall_mean",
		"condition_variability",
	}
	assert.Equal(t, wantOrder, catalog.Names())

	positive := 0
	negative := 0
	for _, ind := range catalog {
		if ind.Polarity == Positive {
			positive++
		} else {
			negative++
		}
	}
	assert.Equal(t, 7, positive)
	assert.Equal(t, 1, negative)

	cv, ok := catalog.Find("condition_variability")
	require.True(t, ok)
	assert.Equal(t, Negative, cv.Polarity)

	_, ok = catalog.Find("no_such_indicator")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	pos := Indicator{Name: "max_ndvi_mean", Polarity: Positive}
	neg := Indicator{Name: "condition_variability", Polarity: Negative}

	tests := []struct {
		name string
		ind  Indicator
		x    float64
		min  float64
		max  float64
		want float64
	}{
		{"positive at min", pos, 2.0, 2.0, 10.0, 0.0},
		{"positive at max", pos, 10.0, 2.0, 10.0, 1.0},
		{"positive midpoint", pos, 6.0, 2.0, 10.0, 0.5},
		{"negative at min", neg, 2.0, 2.0, 10.0, 1.0},
		{"negative at max", neg, 10.0, 2.0, 10.0, 0.0},
		{"negative midpoint", neg, 6.0, 2.0, 10.0, 0.5},
		{"degenerate range positive", pos, 5.0, 5.0, 5.0, 0.0},
		{"degenerate range negative", neg, 5.0, 5.0, 5.0, 0.0},
		// Extrapolation is not clamped
		{"positive above max", pos, 14.0, 2.0, 10.0, 1.5},
		{"positive below min", pos, 0.0, 2.0, 10.0, -0.25},
		{"negative below min", neg, 0.0, 2.0, 10.0, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.ind.Normalize(tt.x, tt.min, tt.max), 1e-12)
		})
	}
}
