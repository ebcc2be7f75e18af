package core

import (
	"fmt"
)

// Result is the materialized form of a DataSet.
type Result struct {
	header Header
	query  string
	rows   []Row
}

// Collect drains the data set into memory and closes it.
func Collect(ds *DataSet) (*Result, error) {
	defer ds.Close()

	r := &Result{
		header: ds.Header(),
		query:  ds.Query(),
		rows:   make([]Row, 0),
	}

	for ds.Next() {
		r.rows = append(r.rows, ds.Row())
	}
	if err := ds.Err(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Result) Header() Header {
	return r.header
}

func (r *Result) Meta() *Meta {
	return &Meta{Query: r.query}
}

func (r *Result) Len() int {
	return len(r.rows)
}

func (r *Result) Format(formatter Formatter, from, to int) ([]byte, error) {
	rows, fromAdjusted, _, err := r.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("r.getRows: %w", err)
	}

	opts := &FormatterOptions{
		ChunkStart: fromAdjusted,
	}

	f, err := formatter.Format(r.header, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

// Rows returns a range of rows. Negative indices count from the end, so
// Rows(0, -1) returns all rows and Rows(-3, -1) the last two.
func (r *Result) Rows(from, to int) ([]Row, error) {
	rows, _, _, err := r.getRows(from, to)
	return rows, err
}

// getRows returns the row range and adjusted from-to values
func (r *Result) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	// validation
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	// calculate range
	length := len(r.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}

	return r.rows[from:to], from, to, nil
}
