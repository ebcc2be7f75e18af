package builders

import (
	"math"
	"strconv"
	"strings"
)

// integerTypes and floatTypes are database type names (as reported by
// sql.ColumnType.DatabaseTypeName) whose values are normalized to int64 and
// float64.
var (
	integerTypes = map[string]struct{}{
		"int": {}, "integer": {}, "smallint": {}, "bigint": {}, "tinyint": {}, "mediumint": {},
		"int2": {}, "int4": {}, "int8": {}, "serial": {}, "bigserial": {}, "smallserial": {},
		"unsigned int": {}, "unsigned smallint": {}, "unsigned tinyint": {}, "unsigned mediumint": {},
		"int16": {}, "int32": {}, "int64": {}, "uint8": {}, "uint16": {}, "uint32": {},
		"hugeint": {}, "long": {}, "short": {}, "byte": {},
	}
	floatTypes = map[string]struct{}{
		"float": {}, "float4": {}, "float8": {}, "double": {}, "double precision": {}, "real": {},
		"decfloat": {}, "float32": {}, "float64": {}, "binary_float": {}, "binary_double": {},
	}
)

func baseTypeName(typ string) string {
	t := strings.ToLower(strings.TrimSpace(typ))
	if strings.HasPrefix(t, "nullable(") && strings.HasSuffix(t, ")") {
		t = t[len("nullable(") : len(t)-1]
	}
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// normalizeValue converts a scanned driver value to the uniform row value
// types: integers become int64, floating point numbers float64, byte slices
// string. NULL stays nil.
func normalizeValue(typ string, val any) any {
	if val == nil {
		return nil
	}

	base := baseTypeName(typ)
	if _, ok := integerTypes[base]; ok {
		if i, ok := toInt64(val); ok {
			return i
		}
	}
	if _, ok := floatTypes[base]; ok {
		if f, ok := toFloat64(val); ok {
			return f
		}
	}

	switch v := val.(type) {
	case []byte:
		return string(v)
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case float32:
		return float64(v)
	}

	return val
}

func toInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case []byte:
		i, err := strconv.ParseInt(string(v), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func toFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
