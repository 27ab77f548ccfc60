package sprout

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation names an unknown sprout,
// leaf, or twig.
var ErrNotFound = errors.New("sprout: not found")

// ValidationError reports rejected input. It is recoverable: callers
// render the reason inline and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sprout: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
