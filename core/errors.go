package core

import (
	"errors"
	"fmt"
)

var (
	// ErrExecution is matched by every ExecutionError.
	ErrExecution = errors.New("query execution failed")

	ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }
)

// ExecutionError wraps a backend failure together with the SQL that caused it.
type ExecutionError struct {
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %q: %s", e.Query, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}
