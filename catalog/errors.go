package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

type Kind string

const (
	KindSchema Kind = "schema"
	KindTable  Kind = "table"
	KindColumn Kind = "column"
)

// NotFoundError is returned when a schema, table or column does not exist.
type NotFoundError struct {
	Kind   Kind
	Name   string
	Parent string
}

func (e *NotFoundError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s %q not found in %q", e.Kind, e.Name, e.Parent)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
