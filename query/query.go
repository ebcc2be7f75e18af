// Package query models a single database agnostic SELECT.
package query

import (
	"github.com/kndndrj/dbquery/catalog"
)

type Function string

const (
	FunctionNone  Function = ""
	FunctionCount Function = "COUNT"
	FunctionSum   Function = "SUM"
	FunctionAvg   Function = "AVG"
	FunctionMin   Function = "MIN"
	FunctionMax   Function = "MAX"
)

func (f Function) valid() bool {
	switch f {
	case FunctionNone, FunctionCount, FunctionSum, FunctionAvg, FunctionMin, FunctionMax:
		return true
	default:
		return false
	}
}

// SelectItem is a projected column or an aggregate over a column.
// COUNT(*) has a nil Column.
type SelectItem struct {
	Column   *catalog.Column
	Function Function
	Alias    string
}

// IsCountAll reports whether the item is COUNT(*).
func (s SelectItem) IsCountAll() bool {
	return s.Function == FunctionCount && s.Column == nil
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

type OrderItem struct {
	Column    *catalog.Column
	Direction Direction
}

// Query is an immutable SELECT over a single table. Build it with Builder.
type Query struct {
	table   *catalog.Table
	items   []SelectItem
	where   Filter
	groupBy []*catalog.Column
	orderBy []OrderItem

	limit     int
	hasLimit  bool
	offset    int
	hasOffset bool
}

func (q *Query) Table() *catalog.Table {
	return q.table
}

func (q *Query) SelectItems() []SelectItem {
	out := make([]SelectItem, len(q.items))
	copy(out, q.items)
	return out
}

// Where returns a copy of the filter tree or nil. Changing the copy does
// not change the query.
func (q *Query) Where() Filter {
	if q.where == nil {
		return nil
	}
	return cloneFilter(q.where)
}

func (q *Query) GroupBy() []*catalog.Column {
	out := make([]*catalog.Column, len(q.groupBy))
	copy(out, q.groupBy)
	return out
}

func (q *Query) OrderBy() []OrderItem {
	out := make([]OrderItem, len(q.orderBy))
	copy(out, q.orderBy)
	return out
}

// Limit returns the maximum number of rows and whether it was set.
func (q *Query) Limit() (int, bool) {
	return q.limit, q.hasLimit
}

// Offset returns the number of skipped rows (0-based) and whether it was set.
func (q *Query) Offset() (int, bool) {
	return q.offset, q.hasOffset
}

func (q *Query) clone() *Query {
	c := *q
	c.items = q.SelectItems()
	c.groupBy = q.GroupBy()
	c.orderBy = q.OrderBy()
	return &c
}

// WithLimit returns a copy of the query with a different limit.
func (q *Query) WithLimit(n int) (*Query, error) {
	if n < 0 {
		return nil, invalidf("limit must not be negative: %d", n)
	}
	c := q.clone()
	c.limit, c.hasLimit = n, true
	return c, nil
}

// WithOffset returns a copy of the query with a different offset.
func (q *Query) WithOffset(n int) (*Query, error) {
	if n < 0 {
		return nil, invalidf("offset must not be negative: %d", n)
	}
	c := q.clone()
	c.offset, c.hasOffset = n, true
	return c, nil
}

// WithoutPagination returns a copy of the query with limit and offset removed.
func (q *Query) WithoutPagination() *Query {
	c := q.clone()
	c.limit, c.hasLimit = 0, false
	c.offset, c.hasOffset = 0, false
	return c
}

// WithPagination returns a copy of the query with both limit and offset set.
func (q *Query) WithPagination(limit, offset int) (*Query, error) {
	c, err := q.WithLimit(limit)
	if err != nil {
		return nil, err
	}
	return c.WithOffset(offset)
}
