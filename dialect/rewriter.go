package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/query"
)

const (
	// SubqueryAlias names the derived table of the row numbering rewrite.
	SubqueryAlias = "metamodel_subquery"
	// RowNumberAlias names the synthetic row number column.
	RowNumberAlias = "metamodel_row_number"

	expressionAliasPrefix = "metamodel_col_"
)

// Rewriter turns query models into SQL text of a single dialect. It has no
// state besides the dialect and is safe for concurrent use.
type Rewriter struct {
	dialect *Dialect
}

func NewRewriter(d *Dialect) *Rewriter {
	return &Rewriter{dialect: d}
}

func (r *Rewriter) Dialect() *Dialect {
	return r.dialect
}

// Rewrite renders the query. Pagination is never dropped: if the dialect
// has no strategy for the requested limit/offset an UnsupportedFeatureError
// is returned and no SQL is produced.
func (r *Rewriter) Rewrite(q *query.Query) (string, error) {
	if q == nil || q.Table() == nil {
		return "", &query.InvalidQueryError{Reason: "no source table"}
	}

	parts, err := r.render(q)
	if err != nil {
		return "", err
	}

	limit, hasLimit := q.Limit()
	offset, _ := q.Offset()

	if offset < 0 || limit < 0 {
		return "", &query.InvalidQueryError{Reason: "limit and offset must not be negative"}
	}

	switch {
	case !hasLimit && offset == 0:
		return parts.sql(), nil
	case offset == 0:
		return r.limitOnly(q, parts, limit)
	default:
		return r.limitAndOffset(q, parts, limit, hasLimit, offset)
	}
}

func (r *Rewriter) limitOnly(q *query.Query, p *selectParts, limit int) (string, error) {
	d := r.dialect
	n := strconv.Itoa(limit)

	switch {
	case d.SupportsFetchFirst:
		return p.sql() + " FETCH FIRST " + n + " ROWS ONLY", nil
	case d.SupportsLimitOffset:
		return p.sql() + " LIMIT " + n, nil
	case d.SupportsTop:
		top := *p
		top.selectClause = "SELECT TOP " + n + strings.TrimPrefix(p.selectClause, "SELECT")
		return top.sql(), nil
	case d.SupportsOffsetFetch:
		return r.offsetFetch(p, 0, limit, true), nil
	case d.RowNumberFunction != "":
		return r.rowNumber(q, 0, limit, true)
	default:
		return "", &UnsupportedFeatureError{Dialect: d.Name, Feature: "limit"}
	}
}

func (r *Rewriter) limitAndOffset(q *query.Query, p *selectParts, limit int, hasLimit bool, offset int) (string, error) {
	d := r.dialect
	o := strconv.Itoa(offset)

	switch {
	case d.SupportsLimitOffset:
		if hasLimit {
			return p.sql() + " LIMIT " + strconv.Itoa(limit) + " OFFSET " + o, nil
		}
		if d.MaxLimit != "" {
			return p.sql() + " LIMIT " + d.MaxLimit + " OFFSET " + o, nil
		}
		return p.sql() + " OFFSET " + o, nil
	case d.SupportsOffsetFetch:
		return r.offsetFetch(p, offset, limit, hasLimit), nil
	case d.RowNumberFunction != "":
		return r.rowNumber(q, offset, limit, hasLimit)
	default:
		return "", &UnsupportedFeatureError{Dialect: d.Name, Feature: "offset"}
	}
}

func (r *Rewriter) offsetFetch(p *selectParts, offset, limit int, hasLimit bool) string {
	var b strings.Builder
	b.WriteString(p.sql())
	if p.orderBy == "" && r.dialect.OffsetFetchRequiresOrderBy {
		b.WriteString(" ORDER BY (SELECT NULL)")
	}
	b.WriteString(" OFFSET " + strconv.Itoa(offset) + " ROWS")
	if hasLimit {
		b.WriteString(" FETCH NEXT " + strconv.Itoa(limit) + " ROWS ONLY")
	}
	return b.String()
}

// rowNumber emulates pagination by numbering the rows of the unpaginated
// query in a derived table and filtering on that number. Offsets are 0-based
// in the model and the row numbers are 1-based, so the window is
// [offset+1, offset+limit].
func (r *Rewriter) rowNumber(q *query.Query, offset, limit int, hasLimit bool) (string, error) {
	d := r.dialect
	items := q.SelectItems()

	// plain columns whose name repeats, or matches a user alias, need
	// distinct names in the derived table
	seen := make(map[string]int)
	for _, it := range items {
		switch {
		case it.Alias != "":
			seen[it.Alias]++
		case it.Function == query.FunctionNone && it.Column != nil:
			seen[it.Column.Name]++
		}
	}

	inner := make([]string, len(items))
	outer := make([]string, len(items))
	for i, it := range items {
		var label string
		switch {
		case it.Alias != "":
			label = d.Quote(it.Alias)
		case it.Function != query.FunctionNone, it.Column == nil, seen[it.Column.Name] > 1:
			label = expressionAliasPrefix + strconv.Itoa(i+1)
		}

		rendered, err := r.selectItem(it, label)
		if err != nil {
			return "", err
		}
		inner[i] = rendered

		if label != "" {
			outer[i] = SubqueryAlias + "." + label
		} else {
			outer[i] = SubqueryAlias + "." + d.Quote(it.Column.Name)
		}
	}

	p, err := r.renderWith(q, strings.Join(inner, ", "))
	if err != nil {
		return "", err
	}

	window := d.RowNumberFunction + " OVER(" + strings.TrimPrefix(p.orderBy, " ") + ")"
	ordered := p.orderBy != ""
	p.orderBy = ""
	p.selectClause += ", " + window + " AS " + RowNumberAlias

	var b strings.Builder
	b.WriteString("SELECT " + strings.Join(outer, ", "))
	b.WriteString(" FROM (" + p.sql() + ") " + SubqueryAlias)
	if hasLimit {
		fmt.Fprintf(&b, " WHERE %s BETWEEN %d AND %d", RowNumberAlias, offset+1, offset+limit)
	} else {
		fmt.Fprintf(&b, " WHERE %s > %d", RowNumberAlias, offset)
	}
	if ordered {
		b.WriteString(" ORDER BY " + RowNumberAlias)
	}

	return b.String(), nil
}

// selectParts holds the rendered clauses of an unpaginated SELECT. Every
// clause except selectClause carries its leading space.
type selectParts struct {
	selectClause string
	from         string
	where        string
	groupBy      string
	orderBy      string
}

func (p *selectParts) sql() string {
	return p.selectClause + p.from + p.where + p.groupBy + p.orderBy
}

func (r *Rewriter) render(q *query.Query) (*selectParts, error) {
	items := q.SelectItems()
	rendered := make([]string, len(items))
	for i, it := range items {
		label := ""
		if it.Alias != "" {
			label = r.dialect.Quote(it.Alias)
		}
		s, err := r.selectItem(it, label)
		if err != nil {
			return nil, err
		}
		rendered[i] = s
	}
	return r.renderWith(q, strings.Join(rendered, ", "))
}

func (r *Rewriter) renderWith(q *query.Query, items string) (*selectParts, error) {
	p := &selectParts{
		selectClause: "SELECT " + items,
		from:         " FROM " + r.tableLabel(q.Table()),
	}

	if f := q.Where(); f != nil {
		where, err := r.filter(f, true)
		if err != nil {
			return nil, err
		}
		p.where = " WHERE " + where
	}

	if cols := q.GroupBy(); len(cols) > 0 {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = r.columnLabel(c)
		}
		p.groupBy = " GROUP BY " + strings.Join(names, ", ")
	}

	if order := q.OrderBy(); len(order) > 0 {
		names := make([]string, len(order))
		for i, o := range order {
			names[i] = r.columnLabel(o.Column) + " " + o.Direction.String()
		}
		p.orderBy = " ORDER BY " + strings.Join(names, ", ")
	}

	return p, nil
}

// selectItem renders a projection, followed by AS label when label is not
// empty.
func (r *Rewriter) selectItem(it query.SelectItem, label string) (string, error) {
	var s string
	switch {
	case it.IsCountAll():
		s = "COUNT(*)"
	case it.Column == nil:
		return "", &query.InvalidQueryError{Reason: "select item without column"}
	case it.Function == query.FunctionNone:
		s = r.columnLabel(it.Column)
	default:
		s = string(it.Function) + "(" + r.columnLabel(it.Column) + ")"
	}

	if label != "" {
		s += " AS " + label
	}
	return s, nil
}

func (r *Rewriter) tableLabel(t *catalog.Table) string {
	d := r.dialect
	label := d.Quote(t.Name)

	s := t.Schema()
	if d.OmitSchema || s == nil || s.Name == "" {
		return label
	}

	if d.QuoteSchema {
		return d.Quote(s.Name) + "." + label
	}
	return s.Name + "." + label
}

func (r *Rewriter) columnLabel(c *catalog.Column) string {
	if c.Table() == nil {
		return r.dialect.Quote(c.Name)
	}
	return r.tableLabel(c.Table()) + "." + r.dialect.Quote(c.Name)
}

func (r *Rewriter) filter(f query.Filter, top bool) (string, error) {
	switch n := f.(type) {
	case *query.Condition:
		return r.condition(n)

	case *query.Group:
		parts := make([]string, 0, len(n.Filters))
		for _, child := range n.Filters {
			s, err := r.filter(child, false)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		joined := strings.Join(parts, " "+string(n.Operator)+" ")
		if top || len(parts) == 1 {
			return joined, nil
		}
		return "(" + joined + ")", nil

	default:
		return "", &query.InvalidQueryError{Reason: fmt.Sprintf("unknown filter type %T", f)}
	}
}

func (r *Rewriter) condition(c *query.Condition) (string, error) {
	col := c.Column()
	if col == nil {
		return "", &query.InvalidQueryError{Reason: fmt.Sprintf("unresolved column %q", c.ColumnName)}
	}
	label := r.columnLabel(col)

	switch c.Operator {
	case query.OperatorIsNull, query.OperatorIsNotNull:
		return label + " " + string(c.Operator), nil

	case query.OperatorIn:
		values, _ := c.Value.([]any)
		lits := make([]string, len(values))
		for i, v := range values {
			lit, err := r.dialect.Literal(v)
			if err != nil {
				return "", err
			}
			lits[i] = lit
		}
		return label + " IN (" + strings.Join(lits, ", ") + ")", nil

	case query.OperatorEq, query.OperatorNotEq:
		if c.Value == nil {
			if c.Operator == query.OperatorEq {
				return label + " IS NULL", nil
			}
			return label + " IS NOT NULL", nil
		}
		fallthrough

	default:
		lit, err := r.dialect.Literal(c.Value)
		if err != nil {
			return "", err
		}
		return label + " " + string(c.Operator) + " " + lit, nil
	}
}
