package contracts

import "math"

// ObservationRecord is one row of a per-year indicator table: one
// spatial unit in one stratum with one value per catalog indicator.
// Missing values are stored as NaN.
type ObservationRecord struct {
	UnitID    string
	StratumID string
	Year      int

	// Values keyed by indicator name. A missing key or a NaN value
	// both mean the indicator was not observed for this unit.
	Values map[string]float64
}

// Value returns the indicator value and whether it is present
// (present means the key exists and the value is not NaN).
func (r ObservationRecord) Value(indicator string) (float64, bool) {
	v, ok := r.Values[indicator]
	if !ok || math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

// YearTable is one year's worth of observations in input row order.
type YearTable struct {
	Year    int
	Records []ObservationRecord
}

// Strata returns the set of stratum identifiers present in the table.
func (t YearTable) Strata() map[string]struct{} {
	strata := make(map[string]struct{})
	for _, r := range t.Records {
		strata[r.StratumID] = struct{}{}
	}
	return strata
}
