package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/chf/internal/contracts"
)

// miniCatalog keeps test fixtures small.
var miniCatalog = contracts.Catalog{
	{Name: "max_ndvi_mean", Polarity: contracts.Positive},
	{Name: "condition_variability", Polarity: contracts.Negative},
}

func writeTable(t *testing.T, dir string, year int, content string) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("indicators_%d.csv", year))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadYear(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, 2018, `Unit_ID,Strata_ID,max_ndvi_mean,max_ndvi_stdDev,condition_variability
U_1,101,0.75,0.1,0.2
U_2,101,,0.1,0.3
U_3,102,0.60,0.2,NA
`)

	r := NewReader(dir, miniCatalog)
	table, err := r.LoadYear(2018)
	require.NoError(t, err)

	require.Len(t, table.Records, 3)
	assert.Equal(t, 2018, table.Year)

	first := table.Records[0]
	assert.Equal(t, "U_1", first.UnitID)
	assert.Equal(t, "101", first.StratumID)
	v, ok := first.Value("max_ndvi_mean")
	require.True(t, ok)
	assert.Equal(t, 0.75, v)

	// Empty cell is missing
	_, ok = table.Records[1].Value("max_ndvi_mean")
	assert.False(t, ok)

	// NA cell is missing
	_, ok = table.Records[2].Value("condition_variability")
	assert.False(t, ok)

	strata := table.Strata()
	assert.Len(t, strata, 2)
	assert.Contains(t, strata, "101")
	assert.Contains(t, strata, "102")
}

func TestLoadYearMissingFile(t *testing.T) {
	r := NewReader(t.TempDir(), miniCatalog)

	_, err := r.LoadYear(2021)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrYearUnavailable)
	assert.Contains(t, err.Error(), "2021")
}

func TestLoadYearMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, 2018, `Unit_ID,Strata_ID,max_ndvi_mean
U_1,101,0.75
`)

	r := NewReader(dir, miniCatalog)
	_, err := r.LoadYear(2018)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "condition_variability")
}

func TestLoadYearBadValue(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, 2018, `Unit_ID,Strata_ID,max_ndvi_mean,condition_variability
U_1,101,not-a-number,0.2
`)

	r := NewReader(dir, miniCatalog)
	_, err := r.LoadYear(2018)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_ndvi_mean")
	assert.Contains(t, err.Error(), "line 2")
}
