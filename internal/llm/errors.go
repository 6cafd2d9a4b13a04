package llm

import "errors"

var (
	// ErrGeneratorUnavailable indicates the generation server is unreachable.
	ErrGeneratorUnavailable = errors.New("generation server unavailable")

	// ErrTimeout indicates the generation request exceeded the configured timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("generation retry attempts exhausted")
)
