package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/query"
)

var errInvalidCondition = errors.New("invalid condition")

// QueryOptions are the flags shared by commands that build a query.
type QueryOptions struct {
	Select     []string
	Count      bool
	Aggregates []string
	Where      []string
	GroupBy    []string
	OrderBy    []string
	Limit      int
	Offset     int
}

func (o *QueryOptions) register(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&o.Select, "select", "s", nil, "columns to select (default all)")
	flags.BoolVar(&o.Count, "count", false, "select COUNT(*)")
	flags.StringSliceVar(&o.Aggregates, "aggregate", nil, "aggregates to select, FUNCTION:COLUMN (e.g. SUM:POPULATION)")
	flags.StringArrayVarP(&o.Where, "where", "w", nil, "condition COLUMN<op>VALUE, op is one of = != < <= > >= ~ (like), repeated conditions are AND-ed")
	flags.StringSliceVar(&o.GroupBy, "group-by", nil, "columns to group by")
	flags.StringSliceVarP(&o.OrderBy, "order-by", "o", nil, "columns to order by, COLUMN[:desc]")
	flags.IntVarP(&o.Limit, "limit", "l", -1, "maximum number of rows")
	flags.IntVar(&o.Offset, "offset", -1, "number of rows to skip")
}

// build turns the flags into a query over table.
func (o *QueryOptions) build(table *catalog.Table) (*query.Query, error) {
	b := query.NewBuilder().From(table)

	if len(o.Select) > 0 {
		b.Select(o.Select...)
	}
	if o.Count {
		b.SelectCount()
	}
	for _, agg := range o.Aggregates {
		fn, column, ok := strings.Cut(agg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid aggregate %q: expected FUNCTION:COLUMN", agg)
		}
		b.SelectAggregate(query.Function(strings.ToUpper(fn)), column)
	}
	if len(o.Select) == 0 && !o.Count && len(o.Aggregates) == 0 {
		b.SelectColumns(table.Columns()...)
	}

	for _, w := range o.Where {
		cond, err := parseCondition(w)
		if err != nil {
			return nil, err
		}
		b.Where(cond)
	}

	if len(o.GroupBy) > 0 {
		b.GroupBy(o.GroupBy...)
	}

	for _, ob := range o.OrderBy {
		column, dir, _ := strings.Cut(ob, ":")
		direction := query.Ascending
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			direction = query.Descending
		default:
			return nil, fmt.Errorf("invalid order direction %q", dir)
		}
		b.OrderBy(column, direction)
	}

	if o.Limit >= 0 {
		b.Limit(o.Limit)
	}
	if o.Offset >= 0 {
		b.Offset(o.Offset)
	}

	return b.ToQuery()
}

// parseCondition parses COLUMN<op>VALUE. The first operator character ends
// the column name. A value of null makes = and != IS NULL and IS NOT NULL
// checks.
func parseCondition(s string) (*query.Condition, error) {
	i := strings.IndexAny(s, "!<>=~")
	if i <= 0 {
		return nil, fmt.Errorf("%w: %q", errInvalidCondition, s)
	}

	op := s[i : i+1]
	if (op == "!" || op == "<" || op == ">") && strings.HasPrefix(s[i+1:], "=") {
		op = s[i : i+2]
	}

	column := strings.TrimSpace(s[:i])
	raw := strings.TrimSpace(s[i+len(op):])
	value := parseValue(raw)

	switch op {
	case "=":
		return query.Eq(column, value), nil
	case "!=":
		return query.NotEq(column, value), nil
	case "<":
		return query.Lt(column, value), nil
	case "<=":
		return query.Lte(column, value), nil
	case ">":
		return query.Gt(column, value), nil
	case ">=":
		return query.Gte(column, value), nil
	case "~":
		return query.Like(column, raw), nil
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidCondition, s)
	}
}

// parseValue turns a flag value into a literal: null, booleans, integers and
// finite floats are recognized, anything else is a string. Quoted values are
// always strings.
func parseValue(s string) any {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}

	switch strings.ToLower(s) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}

	return s
}
