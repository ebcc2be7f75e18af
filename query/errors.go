package query

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is matched by every InvalidQueryError.
var ErrInvalidQuery = errors.New("invalid query")

// InvalidQueryError describes a malformed query model.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Reason
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

func invalidf(format string, args ...any) error {
	return &InvalidQueryError{Reason: fmt.Sprintf(format, args...)}
}
