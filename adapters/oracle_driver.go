package adapters

import (
	"context"
	"strings"

	"github.com/kndndrj/dbquery/core"
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	// common = 'NO' leaves out the oracle maintained users
	oracleSchemasQuery = `SELECT T.owner, T.name, T.type, C.column_name, C.data_type, C.nullable, C.column_id
FROM (
	SELECT owner, table_name AS name, 'TABLE' AS type FROM all_tables
	UNION ALL
	SELECT owner, view_name AS name, 'VIEW' AS type FROM all_views
) T
JOIN all_users U ON T.owner = U.username
LEFT JOIN all_tab_columns C ON C.owner = T.owner AND C.table_name = T.name
WHERE U.common = 'NO'
ORDER BY T.owner, T.name, C.column_id`

	oraclePrincipalQuery = `SELECT USER FROM DUAL`
)

var _ core.Driver = (*oracleDriver)(nil)

type oracleDriver struct {
	*sqlDriver
}

func newOracleDriver(c *builders.Client) *oracleDriver {
	return &oracleDriver{
		sqlDriver: &sqlDriver{
			c:              c,
			dialect:        dialect.Oracle,
			schemasQuery:   oracleSchemasQuery,
			principalQuery: oraclePrincipalQuery,
			tableType:      builders.DefaultTableType,
		},
	}
}

func (d *oracleDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	// go-ora rejects the trailing semicolon
	query = strings.TrimSuffix(strings.TrimSpace(query), ";")

	return d.sqlDriver.Query(ctx, query)
}
