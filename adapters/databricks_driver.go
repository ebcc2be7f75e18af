package adapters

import (
	"fmt"

	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	// information_schema of unity catalog is scoped per catalog
	databricksSchemasQuery = `SELECT t.table_schema, t.table_name, t.table_type, c.column_name, c.data_type, c.is_nullable, c.ordinal_position
FROM %[1]s.information_schema.tables t
LEFT JOIN %[1]s.information_schema.columns c ON c.table_schema = t.table_schema AND c.table_name = t.table_name
WHERE t.table_schema <> 'information_schema'
ORDER BY t.table_schema, t.table_name, c.ordinal_position`

	databricksPrincipalQuery = `SELECT current_schema()`
)

func newDatabricksDriver(c *builders.Client, currentCatalog string) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.Databricks,
		schemasQuery:   fmt.Sprintf(databricksSchemasQuery, dialect.Databricks.Quote(currentCatalog)),
		principalQuery: databricksPrincipalQuery,
		tableType:      builders.DefaultTableType,
	}
}
