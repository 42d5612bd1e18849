package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/haritlabs/chf/internal/contracts"
)

// ScoresFileName is the composite score output artifact.
const ScoresFileName = "chf_scores.csv"

// WriteScores writes the scores table (Year, Unit_ID, Strata_ID,
// CHF_Score) to path, preserving the caller's row order (grouped by
// year, then input row order within the year).
func WriteScores(path string, records []contracts.ScoreRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scores file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Year", "Unit_ID", "Strata_ID", "CHF_Score"}); err != nil {
		return fmt.Errorf("failed to write scores header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.UnitID,
			rec.StratumID,
			formatFloat(rec.Score),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write score row for unit %s: %w", rec.UnitID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush scores file: %w", err)
	}

	return nil
}

// formatFloat renders a float with full round-trip precision so
// artifacts are bit-identical across identical runs.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadScores reads a scores artifact back, preserving file row order.
func ReadScores(path string) ([]contracts.ScoreRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scores file %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("scores file %s is empty", path)
	}

	records := make([]contracts.ScoreRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("scores file %s line %d has %d columns, expected 4", path, i+2, len(row))
		}
		var rec contracts.ScoreRecord
		if rec.Year, err = strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("scores file %s line %d: invalid year: %w", path, i+2, err)
		}
		rec.UnitID = row[1]
		rec.StratumID = row[2]
		if rec.Score, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("scores file %s line %d: invalid score: %w", path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
