package adapters

import (
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	// unmatched LEFT JOIN rows carry empty strings instead of NULLs unless
	// join_use_nulls is set
	clickhouseSchemasQuery = `SELECT t.database, t.name, if(t.engine LIKE '%View', 'VIEW', 'TABLE'), c.name, c.type, startsWith(c.type, 'Nullable'), c.position
FROM system.tables t
LEFT JOIN system.columns c ON c.database = t.database AND c.table = t.name
WHERE t.database NOT IN ('system', 'INFORMATION_SCHEMA', 'information_schema')
ORDER BY t.database, t.name, c.position`

	clickhousePrincipalQuery = `SELECT currentDatabase()`
)

func newClickhouseDriver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.ClickHouse,
		schemasQuery:   clickhouseSchemasQuery,
		principalQuery: clickhousePrincipalQuery,
		tableType:      builders.DefaultTableType,
	}
}
