package domain

import "errors"

// Client errors. Callers map these to 400 responses with errors.Is.
var (
	ErrMissingField      = errors.New("missing required parameters")
	ErrUnsupportedHazard = errors.New("unsupported hazard type")
	ErrInvalidScenario   = errors.New("invalid scenario")
)

// ErrUnknownState is returned by lookups that have no default fallback.
var ErrUnknownState = errors.New("state not found")
