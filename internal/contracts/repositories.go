package contracts

// TableSource loads one year's indicator table. Implemented by the
// CSV dataset reader; the engines depend on this interface so tests
// can feed tables directly.
type TableSource interface {
	LoadYear(year int) (*YearTable, error)
}
