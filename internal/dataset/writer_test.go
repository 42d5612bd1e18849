package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/chf/internal/contracts"
)

func TestWriteScores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results", ScoresFileName)

	records := []contracts.ScoreRecord{
		{Year: 2018, UnitID: "U_1", StratumID: "101", Score: 0.5},
		{Year: 2018, UnitID: "U_2", StratumID: "102", Score: 0.25},
		{Year: 2023, UnitID: "U_1", StratumID: "101", Score: 1.125},
	}

	require.NoError(t, WriteScores(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Year", "Unit_ID", "Strata_ID", "CHF_Score"}, rows[0])
	assert.Equal(t, []string{"2018", "U_1", "101", "0.5"}, rows[1])
	assert.Equal(t, []string{"2018", "U_2", "102", "0.25"}, rows[2])
	assert.Equal(t, []string{"2023", "U_1", "101", "1.125"}, rows[3])
}

func TestWriteScoresEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ScoresFileName)

	require.NoError(t, WriteScores(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
