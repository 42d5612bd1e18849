package contracts

import "errors"

var (
	// ErrYearUnavailable marks a requested year whose indicator table
	// could not be found. Non-fatal: callers skip the year with a
	// warning and continue.
	ErrYearUnavailable = errors.New("indicator table not available for year")

	// ErrNoTrainingData aborts training when none of the requested
	// training years yielded a usable table.
	ErrNoTrainingData = errors.New("no training data found for any requested year")

	// ErrModelMissing aborts scoring when the persisted weights or
	// scaling artifacts are absent. Not retryable; train first.
	ErrModelMissing = errors.New("model artifacts missing; run training first")
)
