package models

import "errors"

// Custom errors
var (
	// ErrMissingReportingUnit means an AP race arrived with an empty
	// reportingUnits array. The state-level unit is a hard precondition, so
	// the whole fetch cycle is aborted rather than guessing at county data.
	ErrMissingReportingUnit = errors.New("race has no reporting units")

	// ErrEmptySnapshot is returned when a caller asks for the current
	// snapshot before the first fetch cycle has completed.
	ErrEmptySnapshot = errors.New("no snapshot generated yet")

	ErrNotFound = errors.New("record not found")
)
