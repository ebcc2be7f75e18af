package adapters

import (
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

// svv_columns also lists late binding views and external tables, which
// information_schema misses on redshift.
const redshiftSchemasQuery = `SELECT t.table_schema, t.table_name, t.table_type, c.column_name, c.data_type, c.is_nullable, c.ordinal_position
FROM svv_tables t
LEFT JOIN svv_columns c ON c.table_schema = t.table_schema AND c.table_name = t.table_name
WHERE t.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_internal')
ORDER BY t.table_schema, t.table_name, c.ordinal_position`

func newRedshiftDriver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.Redshift,
		schemasQuery:   redshiftSchemasQuery,
		principalQuery: postgresPrincipalQuery,
		tableType:      postgresTableType,
	}
}
