package adapters

import (
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

// sqlite has a single "main" schema and no users, the dialect falls back to
// "main" for the default schema.
const sqliteSchemasQuery = `SELECT 'main', m.name, m.type, p.name, p.type, NOT p."notnull", p.cid + 1
FROM sqlite_master m
LEFT JOIN pragma_table_info(m.name) p
WHERE m.type IN ('table', 'view') AND m.name NOT LIKE 'sqlite_%'
ORDER BY m.name, p.cid`

func newSQLiteDriver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:            c,
		dialect:      dialect.SQLite,
		schemasQuery: sqliteSchemasQuery,
		tableType:    builders.DefaultTableType,
	}
}
