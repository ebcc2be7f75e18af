package adapters

import (
	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	db2SchemasQuery = `SELECT T.TABSCHEMA, T.TABNAME, T.TYPE, C.COLNAME, C.TYPENAME, C.NULLS, C.COLNO + 1
FROM SYSCAT.TABLES T
LEFT JOIN SYSCAT.COLUMNS C ON C.TABSCHEMA = T.TABSCHEMA AND C.TABNAME = T.TABNAME
WHERE T.TYPE IN ('T', 'V')
ORDER BY T.TABSCHEMA, T.TABNAME, C.COLNO`

	db2PrincipalQuery = `SELECT CURRENT USER FROM SYSIBM.SYSDUMMY1`
)

func newDB2Driver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.DB2,
		schemasQuery:   db2SchemasQuery,
		principalQuery: db2PrincipalQuery,
		tableType:      db2TableType,
	}
}

// db2TableType decodes SYSCAT.TABLES.TYPE.
func db2TableType(typ string) catalog.TableType {
	if typ == "V" {
		return catalog.TableTypeView
	}
	return catalog.TableTypeTable
}
