package contracts

// Polarity describes the direction of an indicator: whether higher
// values represent better or worse crop condition.
type Polarity int

const (
	// Positive polarity: higher is better (e.g. peak NDVI).
	Positive Polarity = iota
	// Negative polarity: higher is worse (e.g. condition variability).
	Negative
)

// Indicator is one named biophysical/meteorological feature with a
// fixed polarity. Polarity is part of the catalog contract and is
// never inferred from data.
type Indicator struct {
	Name     string
	Polarity Polarity
}

// Normalize maps a raw value into [0,1] against the given bounds,
// directed by polarity. A degenerate range (max == min) yields 0.0
// regardless of polarity. Values outside [min,max] are not clamped.
func (i Indicator) Normalize(x, min, max float64) float64 {
	if max == min {
		return 0.0
	}
	if i.Polarity == Negative {
		return (max - x) / (max - min)
	}
	return (x - min) / (max - min)
}

// Catalog is the fixed, ordered set of indicators shared by the
// weight learner and the score calculator. Treat it as immutable.
type Catalog []Indicator

// DefaultCatalog returns the reference deployment's indicator catalog:
// seven positive indicators and one negative.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "max_ndvi_mean", Polarity: Positive},
		{Name: "max_lswi_mean", Polarity: Positive},
		{Name: "max_backscatter_mean", Polarity: Positive},
		{Name: "integrated_backscatter_mean", Polarity: Positive},
		{Name: "integrated_fapar_mean", Polarity: Positive},
		{Name: "rainy_days_mean", Polarity: Positive},
		{Name: "adjusted_rainfall_mean", Polarity: Positive},
		{Name: "condition_variability", Polarity: Negative},
	}
}

// Names returns the indicator names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, ind := range c {
		names[i] = ind.Name
	}
	return names
}

// Find returns the indicator with the given name.
func (c Catalog) Find(name string) (Indicator, bool) {
	for _, ind := range c {
		if ind.Name == name {
			return ind, true
		}
	}
	return Indicator{}, false
}
