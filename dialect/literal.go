package dialect

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kndndrj/dbquery/query"
)

const defaultTimestampLayout = "2006-01-02 15:04:05"

// Literal renders a Go value as an SQL literal of the dialect.
func (d *Dialect) Literal(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		if d.BackslashEscapes {
			v = strings.ReplaceAll(v, `\`, `\\`)
		}
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	case bool:
		lits := d.BooleanLiterals
		if lits[0] == "" || lits[1] == "" {
			lits = [2]string{"FALSE", "TRUE"}
		}
		if v {
			return lits[1], nil
		}
		return lits[0], nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		if err := finite(float64(v)); err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		if err := finite(v); err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		layout := d.TimestampLayout
		if layout == "" {
			layout = defaultTimestampLayout
		}
		return "TIMESTAMP '" + v.Format(layout) + "'", nil
	case fmt.Stringer:
		return d.Literal(v.String())
	default:
		return "", &query.InvalidQueryError{Reason: fmt.Sprintf("unsupported literal type %T", value)}
	}
}

func finite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &query.InvalidQueryError{Reason: fmt.Sprintf("non-finite number %v has no SQL literal", f)}
	}
	return nil
}
