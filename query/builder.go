package query

import (
	"strings"

	"github.com/kndndrj/dbquery/catalog"
)

type pendingItem struct {
	name     string
	column   *catalog.Column
	function Function
	alias    string
	countAll bool
}

type pendingOrder struct {
	name      string
	direction Direction
}

// Builder assembles a Query. It performs no I/O; column names are resolved
// against the source table in ToQuery, which also reports the first error.
type Builder struct {
	table   *catalog.Table
	items   []pendingItem
	where   []Filter
	groupBy []string
	orderBy []pendingOrder

	limit  *int
	offset *int

	err error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) From(table *catalog.Table) *Builder {
	b.table = table
	return b
}

// Select adds plain columns by name.
func (b *Builder) Select(columns ...string) *Builder {
	for _, name := range columns {
		b.items = append(b.items, pendingItem{name: name})
	}
	return b
}

// SelectColumns adds plain columns taken from the catalog.
func (b *Builder) SelectColumns(columns ...*catalog.Column) *Builder {
	for _, c := range columns {
		if c == nil {
			b.setErr(invalidf("nil column selected"))
			continue
		}
		b.items = append(b.items, pendingItem{name: c.Name, column: c})
	}
	return b
}

// SelectCount adds a COUNT(*) projection.
func (b *Builder) SelectCount() *Builder {
	b.items = append(b.items, pendingItem{function: FunctionCount, countAll: true})
	return b
}

// SelectAggregate adds an aggregate function over a column.
func (b *Builder) SelectAggregate(fn Function, column string) *Builder {
	if fn == FunctionNone || !fn.valid() {
		b.setErr(invalidf("unknown aggregate function %q", fn))
		return b
	}
	b.items = append(b.items, pendingItem{name: column, function: fn})
	return b
}

// As sets the alias of the most recently selected item.
func (b *Builder) As(alias string) *Builder {
	if len(b.items) == 0 {
		b.setErr(invalidf("alias %q without a select item", alias))
		return b
	}
	if strings.TrimSpace(alias) == "" {
		b.setErr(invalidf("empty alias"))
		return b
	}
	b.items[len(b.items)-1].alias = alias
	return b
}

// Where adds a filter. Multiple filters are joined with AND.
func (b *Builder) Where(f Filter) *Builder {
	if f == nil {
		b.setErr(invalidf("nil filter"))
		return b
	}
	b.where = append(b.where, f)
	return b
}

func (b *Builder) GroupBy(columns ...string) *Builder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	b.orderBy = append(b.orderBy, pendingOrder{name: column, direction: direction})
	return b
}

func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		b.setErr(invalidf("limit must not be negative: %d", n))
		return b
	}
	b.limit = &n
	return b
}

func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		b.setErr(invalidf("offset must not be negative: %d", n))
		return b
	}
	b.offset = &n
	return b
}

// ToQuery finalizes the query. Without explicit select items all columns
// of the table are selected.
func (b *Builder) ToQuery() (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.table == nil {
		return nil, invalidf("no source table")
	}

	q := &Query{table: b.table}

	for _, it := range b.items {
		item := SelectItem{Function: it.function, Alias: it.alias}
		if !it.countAll {
			col := it.column
			if col == nil {
				var err error
				col, err = b.table.ColumnByName(it.name)
				if err != nil {
					return nil, err
				}
			}
			if col.Table() != b.table {
				return nil, invalidf("column %q does not belong to table %q", col.Name, b.table.Name)
			}
			item.Column = col
		}
		q.items = append(q.items, item)
	}

	if len(q.items) == 0 {
		for _, col := range b.table.Columns() {
			q.items = append(q.items, SelectItem{Column: col})
		}
		if len(q.items) == 0 {
			return nil, invalidf("table %q has no columns to select", b.table.Name)
		}
	}

	switch len(b.where) {
	case 0:
	case 1:
		f, err := resolveFilter(b.where[0], b.table)
		if err != nil {
			return nil, err
		}
		q.where = f
	default:
		f, err := resolveFilter(AllOf(b.where...), b.table)
		if err != nil {
			return nil, err
		}
		q.where = f
	}

	for _, name := range b.groupBy {
		col, err := b.table.ColumnByName(name)
		if err != nil {
			return nil, err
		}
		q.groupBy = append(q.groupBy, col)
	}

	for _, o := range b.orderBy {
		col, err := b.table.ColumnByName(o.name)
		if err != nil {
			return nil, err
		}
		q.orderBy = append(q.orderBy, OrderItem{Column: col, Direction: o.direction})
	}

	if b.limit != nil {
		q.limit, q.hasLimit = *b.limit, true
	}
	if b.offset != nil {
		q.offset, q.hasOffset = *b.offset, true
	}

	return q, nil
}
