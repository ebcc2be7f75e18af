package core

import (
	"fmt"
	"strings"
)

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// ChunkStart is the index of the first formatted row in the whole result.
		ChunkStart int
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

type (
	// Row holds the values of a single result row, aligned with the header.
	Row    []any
	Header []string

	// Meta holds metadata
	Meta struct {
		// Query is the SQL text that produced the result.
		Query string
	}

	// ResultStream is a result from executed query and has a form of an iterator
	ResultStream interface {
		Meta() *Meta
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

func (r Row) String() string {
	values := make([]string, len(r))
	for i, v := range r {
		if v == nil {
			values[i] = "null"
			continue
		}
		values[i] = fmt.Sprint(v)
	}
	return "Row[values=[" + strings.Join(values, ", ") + "]]"
}
