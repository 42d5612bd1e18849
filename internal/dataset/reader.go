package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/haritlabs/chf/internal/contracts"
)

const (
	unitIDColumn  = "Unit_ID"
	strataColumn  = "Strata_ID"
	tableFileName = "indicators_%d.csv"
)

// Reader loads per-year indicator tables produced by the external
// geospatial data provider. One flat CSV per year; columns beyond the
// catalog (e.g. <band>_stdDev) are tolerated and ignored.
type Reader struct {
	dir     string
	catalog contracts.Catalog
}

// NewReader creates a reader rooted at the raw-data directory.
func NewReader(dir string, catalog contracts.Catalog) *Reader {
	return &Reader{dir: dir, catalog: catalog}
}

// TablePath returns the expected file path for a year's table.
func (r *Reader) TablePath(year int) string {
	return filepath.Join(r.dir, fmt.Sprintf(tableFileName, year))
}

// LoadYear reads one year's indicator table. A missing file returns
// an error wrapping contracts.ErrYearUnavailable so callers can skip
// the year without aborting.
func (r *Reader) LoadYear(year int) (*contracts.YearTable, error) {
	path := r.TablePath(year)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: year %d (%s)", contracts.ErrYearUnavailable, year, path)
		}
		return nil, fmt.Errorf("failed to open indicator table %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	unitIdx, ok := columns[unitIDColumn]
	if !ok {
		return nil, fmt.Errorf("indicator table %s is missing column %s", path, unitIDColumn)
	}
	strataIdx, ok := columns[strataColumn]
	if !ok {
		return nil, fmt.Errorf("indicator table %s is missing column %s", path, strataColumn)
	}
	for _, ind := range r.catalog {
		if _, ok := columns[ind.Name]; !ok {
			return nil, fmt.Errorf("indicator table %s is missing indicator column %s", path, ind.Name)
		}
	}

	table := &contracts.YearTable{Year: year}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		rec := contracts.ObservationRecord{
			UnitID:    strings.TrimSpace(row[unitIdx]),
			StratumID: strings.TrimSpace(row[strataIdx]),
			Year:      year,
			Values:    make(map[string]float64, len(r.catalog)),
		}

		for _, ind := range r.catalog {
			cell := strings.TrimSpace(row[columns[ind.Name]])
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %s: %w", path, line, ind.Name, err)
			}
			rec.Values[ind.Name] = v
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// parseCell converts one CSV cell to a float64. Empty and NA-style
// cells become NaN (missing).
func parseCell(cell string) (float64, error) {
	switch strings.ToLower(cell) {
	case "", "na", "nan", "null":
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q", cell)
	}
	return v, nil
}
