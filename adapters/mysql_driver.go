package adapters

import (
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	mysqlSchemasQuery = `SELECT t.TABLE_SCHEMA, t.TABLE_NAME, t.TABLE_TYPE, c.COLUMN_NAME, c.DATA_TYPE, c.IS_NULLABLE, c.ORDINAL_POSITION
FROM information_schema.TABLES t
LEFT JOIN information_schema.COLUMNS c ON c.TABLE_SCHEMA = t.TABLE_SCHEMA AND c.TABLE_NAME = t.TABLE_NAME
WHERE t.TABLE_SCHEMA NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
ORDER BY t.TABLE_SCHEMA, t.TABLE_NAME, c.ORDINAL_POSITION`

	// the current database doubles as the default schema
	mysqlPrincipalQuery = `SELECT COALESCE(DATABASE(), '')`
)

func newMySQLDriver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.MySQL,
		schemasQuery:   mysqlSchemasQuery,
		principalQuery: mysqlPrincipalQuery,
		tableType:      builders.DefaultTableType,
	}
}
