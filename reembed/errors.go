package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a retry budget of zero or
	// fewer attempts is requested.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
