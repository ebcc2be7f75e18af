// Package dialect describes SQL dialects as capability descriptors and
// rewrites query models into dialect specific SQL text.
package dialect

import (
	"strings"
)

// Dialect is the capability descriptor of a database product. A single
// generic Rewriter consumes it, so adding a dialect means registering a
// descriptor.
type Dialect struct {
	Name    string
	Aliases []string

	// QuoteOpen and QuoteClose wrap table and column identifiers.
	QuoteOpen  string
	QuoteClose string
	// QuoteSchema also quotes schema names. Unquoted schema names are
	// resolved by the server's case rules.
	QuoteSchema bool
	// OmitSchema renders table references without the schema qualifier.
	OmitSchema bool

	// Case rules of unquoted identifiers, used to normalize principal names.
	UpperCaseIdentifiers bool
	LowerCaseIdentifiers bool

	// SupportsFetchFirst: SELECT ... FETCH FIRST n ROWS ONLY
	SupportsFetchFirst bool
	// SupportsLimitOffset: SELECT ... LIMIT n OFFSET m
	SupportsLimitOffset bool
	// MaxLimit is used as the LIMIT of offset-only queries on dialects that
	// don't accept OFFSET without LIMIT.
	MaxLimit string
	// SupportsOffsetFetch: SELECT ... OFFSET m ROWS FETCH NEXT n ROWS ONLY
	SupportsOffsetFetch bool
	// OffsetFetchRequiresOrderBy makes the rewriter add ORDER BY (SELECT NULL)
	// to unordered OFFSET/FETCH queries.
	OffsetFetchRequiresOrderBy bool
	// SupportsTop: SELECT TOP n ...
	SupportsTop bool
	// RowNumberFunction is the window function used to emulate offsets,
	// e.g. ROW_NUMBER(). Empty disables the emulation.
	RowNumberFunction string

	// BackslashEscapes marks dialects where a backslash escapes the next
	// character inside string literals.
	BackslashEscapes bool

	// BooleanLiterals holds the false and true literals.
	BooleanLiterals [2]string
	// TimestampLayout is the Go time layout for TIMESTAMP literals.
	TimestampLayout string

	// DefaultSchemas are tried, in order, when no schema matches the principal.
	DefaultSchemas []string
}

// Quote wraps an identifier in the dialect's quote characters. Closing quote
// characters inside the identifier are doubled.
func (d *Dialect) Quote(identifier string) string {
	if d.QuoteOpen == "" {
		return identifier
	}
	closing := d.QuoteClose
	if closing == "" {
		closing = d.QuoteOpen
	}
	return d.QuoteOpen + strings.ReplaceAll(identifier, closing, closing+closing) + closing
}

// NormalizeIdentifier applies the dialect's case rule for unquoted
// identifiers.
func (d *Dialect) NormalizeIdentifier(name string) string {
	switch {
	case d.UpperCaseIdentifiers:
		return strings.ToUpper(name)
	case d.LowerCaseIdentifiers:
		return strings.ToLower(name)
	default:
		return name
	}
}
