package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm is returned for an algorithm name that is not registered.
	ErrUnknownAlgorithm = errors.New("trace: unknown algorithm")

	// ErrInvalidStep indicates a step that sets both comparing and swapping,
	// or whose array length differs from the rest of the sequence.
	ErrInvalidStep = errors.New("trace: invalid step")
)

// StepError wraps an error with the index of the offending step.
type StepError struct {
	Index   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
