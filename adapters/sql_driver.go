package adapters

import (
	"context"
	"strings"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

var _ core.Driver = (*sqlDriver)(nil)

// sqlDriver is the database/sql backed driver shared by the vendor adapters.
// Vendors differ in the introspection and principal queries only.
type sqlDriver struct {
	c       *builders.Client
	dialect *dialect.Dialect

	// schemasQuery returns rows in the layout expected by
	// builders.SchemasFromResultStream.
	schemasQuery string
	// principalQuery returns the connected user or current schema as a
	// single value. Empty means the backend has no notion of a principal.
	principalQuery string
	tableType      func(string) catalog.TableType
}

func (d *sqlDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	if isExecStatement(query) {
		return d.c.Exec(ctx, query)
	}

	return d.c.Query(ctx, query)
}

func (d *sqlDriver) Schemas(ctx context.Context) ([]*catalog.Schema, error) {
	return d.c.SchemasFromQuery(ctx, d.schemasQuery, d.tableType)
}

func (d *sqlDriver) Principal(ctx context.Context) (string, error) {
	if d.principalQuery == "" {
		return "", nil
	}

	return d.c.QueryString(ctx, d.principalQuery)
}

func (d *sqlDriver) Dialect() *dialect.Dialect {
	return d.dialect
}

func (d *sqlDriver) Close() {
	d.c.Close()
}

// isExecStatement reports whether the statement modifies data without
// returning rows.
func isExecStatement(query string) bool {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "update", "delete", "insert", "merge":
	default:
		return false
	}

	for _, f := range fields[1:] {
		if f == "returning" {
			return false
		}
	}

	return true
}
