package adapters

import (
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	// attached databases show up in information_schema too, only the current
	// one is introspected
	duckDBSchemasQuery = `SELECT t.table_schema, t.table_name, t.table_type, c.column_name, c.data_type, c.is_nullable, c.ordinal_position
FROM information_schema.tables t
LEFT JOIN information_schema.columns c ON c.table_catalog = t.table_catalog AND c.table_schema = t.table_schema AND c.table_name = t.table_name
WHERE t.table_catalog = current_database()
ORDER BY t.table_schema, t.table_name, c.ordinal_position`

	duckDBPrincipalQuery = `SELECT current_schema()`
)

func newDuckDBDriver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.DuckDB,
		schemasQuery:   duckDBSchemasQuery,
		principalQuery: duckDBPrincipalQuery,
		tableType:      builders.DefaultTableType,
	}
}
