package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/haritlabs/chf/internal/contracts"
)

const (
	// WeightsFileName is the wide weights artifact: one row per
	// stratum, one column per indicator.
	WeightsFileName = "strata_weights.csv"

	// ScalingFileName is the long scaling artifact: one row per
	// (stratum, indicator) pair.
	ScalingFileName = "scaling_factors.csv"
)

// Store persists trained models as CSV artifacts in a model directory.
// Saving overwrites both files atomically from the caller's point of
// view: a training run always replaces the full model version.
type Store struct {
	dir     string
	catalog contracts.Catalog
}

// NewStore creates a store rooted at the model directory.
func NewStore(dir string, catalog contracts.Catalog) *Store {
	return &Store{dir: dir, catalog: catalog}
}

// WeightsPath returns the weights artifact path.
func (s *Store) WeightsPath() string {
	return filepath.Join(s.dir, WeightsFileName)
}

// ScalingPath returns the scaling artifact path.
func (s *Store) ScalingPath() string {
	return filepath.Join(s.dir, ScalingFileName)
}

// Save writes both model artifacts. Strata rows are sorted and
// indicator columns follow catalog order so identical models produce
// byte-identical files.
func (s *Store) Save(m *contracts.Model) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory %s: %w", s.dir, err)
	}

	if err := s.saveWeights(m); err != nil {
		return err
	}
	return s.saveScaling(m)
}

func (s *Store) saveWeights(m *contracts.Model) error {
	f, err := os.Create(s.WeightsPath())
	if err != nil {
		return fmt.Errorf("failed to create weights file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{"Strata_ID"}, s.catalog.Names()...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write weights header: %w", err)
	}

	for _, stratumID := range m.Strata() {
		weights := m.Weights[stratumID]
		row := make([]string, 0, len(header))
		row = append(row, stratumID)
		for _, ind := range s.catalog {
			row = append(row, formatFloat(weights.Weights[ind.Name]))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write weights row for stratum %s: %w", stratumID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush weights file: %w", err)
	}
	return nil
}

func (s *Store) saveScaling(m *contracts.Model) error {
	f, err := os.Create(s.ScalingPath())
	if err != nil {
		return fmt.Errorf("failed to create scaling file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Strata_ID", "Indicator", "Min", "Max"}); err != nil {
		return fmt.Errorf("failed to write scaling header: %w", err)
	}

	for _, stratumID := range m.Strata() {
		factors := m.Scaling[stratumID]
		for _, ind := range s.catalog {
			sf, ok := factors[ind.Name]
			if !ok {
				continue
			}
			row := []string{stratumID, ind.Name, formatFloat(sf.Min), formatFloat(sf.Max)}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write scaling row for stratum %s: %w", stratumID, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush scaling file: %w", err)
	}
	return nil
}

// Load reads both model artifacts back into memory. A missing file
// returns an error wrapping contracts.ErrModelMissing: scoring cannot
// proceed without a trained model.
func (s *Store) Load() (*contracts.Model, error) {
	m := contracts.NewModel()

	if err := s.loadWeights(m); err != nil {
		return nil, err
	}
	if err := s.loadScaling(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) loadWeights(m *contracts.Model) error {
	path := s.WeightsPath()
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("weights file %s is empty", path)
	}

	header := rows[0]
	if len(header) == 0 || strings.TrimSpace(header[0]) != "Strata_ID" {
		return fmt.Errorf("weights file %s has unexpected header", path)
	}

	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return fmt.Errorf("weights file %s line %d has %d columns, expected %d", path, i+2, len(row), len(header))
		}
		weights := contracts.StratumWeights{
			StratumID: strings.TrimSpace(row[0]),
			Weights:   make(map[string]float64, len(header)-1),
		}
		for j, name := range header[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				return fmt.Errorf("weights file %s line %d column %s: %w", path, i+2, name, err)
			}
			weights.Weights[strings.TrimSpace(name)] = v
		}
		m.Weights[weights.StratumID] = weights
	}
	return nil
}

func (s *Store) loadScaling(m *contracts.Model) error {
	path := s.ScalingPath()
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("scaling file %s is empty", path)
	}

	for i, row := range rows[1:] {
		if len(row) != 4 {
			return fmt.Errorf("scaling file %s line %d has %d columns, expected 4", path, i+2, len(row))
		}
		sf := contracts.ScalingFactor{
			StratumID: strings.TrimSpace(row[0]),
			Indicator: strings.TrimSpace(row[1]),
		}
		if sf.Min, err = strconv.ParseFloat(strings.TrimSpace(row[2]), 64); err != nil {
			return fmt.Errorf("scaling file %s line %d: invalid min: %w", path, i+2, err)
		}
		if sf.Max, err = strconv.ParseFloat(strings.TrimSpace(row[3]), 64); err != nil {
			return fmt.Errorf("scaling file %s line %d: invalid max: %w", path, i+2, err)
		}

		if m.Scaling[sf.StratumID] == nil {
			m.Scaling[sf.StratumID] = make(map[string]contracts.ScalingFactor)
		}
		m.Scaling[sf.StratumID][sf.Indicator] = sf
	}
	return nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", contracts.ErrModelMissing, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// formatFloat renders a float with full round-trip precision so saved
// artifacts load back bit-identical.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
