package contracts

// ScoreRecord is the composite score for one unit in one year: the
// weighted sum of normalized indicator values. Conventionally in
// [0,1]; extrapolated inputs legitimately push it outside that range
// and are not clamped.
type ScoreRecord struct {
	Year      int     `json:"year"`
	UnitID    string  `json:"unit_id"`
	StratumID string  `json:"strata_id"`
	Score     float64 `json:"chf_score"`
}
