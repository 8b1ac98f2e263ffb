package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every argument validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a referenced task does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrNothingToUndo is returned by Undo when the undo log is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// ValidationError describes a rejected argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func notFound(id int) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}
