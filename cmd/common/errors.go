package common

import "errors"

var (
	// ErrInvalidDeps is returned when dependencies fail validation
	ErrInvalidDeps = errors.New("invalid dependencies")

	// ErrQueriesFailed is returned by validate --fail-on-failure when at
	// least one query failed
	ErrQueriesFailed = errors.New("one or more queries failed")
)
