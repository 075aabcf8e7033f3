package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when a source holds no catalog at all.
var ErrEmptyCatalog = errors.New("catalog is empty")

// ValidationError points at the part of a catalog that is malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid catalog: " + e.Reason
	}
	return fmt.Sprintf("invalid catalog: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
