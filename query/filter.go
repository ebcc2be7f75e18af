package query

import (
	"github.com/kndndrj/dbquery/catalog"
)

type Operator string

const (
	OperatorEq        Operator = "="
	OperatorNotEq     Operator = "<>"
	OperatorLt        Operator = "<"
	OperatorLte       Operator = "<="
	OperatorGt        Operator = ">"
	OperatorGte       Operator = ">="
	OperatorLike      Operator = "LIKE"
	OperatorIn        Operator = "IN"
	OperatorIsNull    Operator = "IS NULL"
	OperatorIsNotNull Operator = "IS NOT NULL"
)

type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
)

// Filter is a node of a predicate tree: either a Condition or a Group.
type Filter interface {
	filter()
}

// Condition compares a column against a value.
// Value is ignored for IS NULL and IS NOT NULL, and is a slice for IN.
type Condition struct {
	ColumnName string
	Operator   Operator
	Value      any

	column *catalog.Column
}

func (*Condition) filter() {}

// Column returns the resolved column. It is only set on filters
// of a built query.
func (c *Condition) Column() *catalog.Column {
	return c.column
}

// Group joins filters with a logical operator.
type Group struct {
	Operator LogicalOperator
	Filters  []Filter
}

func (*Group) filter() {}

func Eq(column string, value any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorEq, Value: value}
}

func NotEq(column string, value any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorNotEq, Value: value}
}

func Lt(column string, value any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorLt, Value: value}
}

func Lte(column string, value any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorLte, Value: value}
}

func Gt(column string, value any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorGt, Value: value}
}

func Gte(column string, value any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorGte, Value: value}
}

func Like(column string, pattern string) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorLike, Value: pattern}
}

func In(column string, values ...any) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorIn, Value: values}
}

func IsNull(column string) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorIsNull}
}

func IsNotNull(column string) *Condition {
	return &Condition{ColumnName: column, Operator: OperatorIsNotNull}
}

func AllOf(filters ...Filter) *Group {
	return &Group{Operator: And, Filters: filters}
}

func AnyOf(filters ...Filter) *Group {
	return &Group{Operator: Or, Filters: filters}
}

// resolveFilter returns a copy of the filter tree with columns resolved
// against the table.
func resolveFilter(f Filter, table *catalog.Table) (Filter, error) {
	switch n := f.(type) {
	case *Condition:
		col, err := table.ColumnByName(n.ColumnName)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case OperatorEq, OperatorNotEq, OperatorLt, OperatorLte, OperatorGt, OperatorGte, OperatorLike:
		case OperatorIn:
			values, ok := n.Value.([]any)
			if !ok || len(values) == 0 {
				return nil, invalidf("IN on %q needs at least one value", n.ColumnName)
			}
		case OperatorIsNull, OperatorIsNotNull:
		default:
			return nil, invalidf("unknown operator %q", n.Operator)
		}
		c := cloneCondition(n)
		c.column = col
		return c, nil

	case *Group:
		if n.Operator != And && n.Operator != Or {
			return nil, invalidf("unknown logical operator %q", n.Operator)
		}
		if len(n.Filters) == 0 {
			return nil, invalidf("empty %s group", n.Operator)
		}
		g := &Group{Operator: n.Operator, Filters: make([]Filter, 0, len(n.Filters))}
		for _, child := range n.Filters {
			resolved, err := resolveFilter(child, table)
			if err != nil {
				return nil, err
			}
			g.Filters = append(g.Filters, resolved)
		}
		return g, nil

	case nil:
		return nil, invalidf("nil filter")

	default:
		return nil, invalidf("unknown filter type %T", f)
	}
}

func cloneCondition(c *Condition) *Condition {
	out := *c
	if values, ok := c.Value.([]any); ok {
		out.Value = append([]any(nil), values...)
	}
	return &out
}

// cloneFilter deep copies a filter tree, including IN value lists.
func cloneFilter(f Filter) Filter {
	switch n := f.(type) {
	case *Condition:
		return cloneCondition(n)
	case *Group:
		g := &Group{Operator: n.Operator, Filters: make([]Filter, len(n.Filters))}
		for i, child := range n.Filters {
			g.Filters[i] = cloneFilter(child)
		}
		return g
	default:
		return f
	}
}
