package adapters

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core/builders"
	"github.com/kndndrj/dbquery/dialect"
)

const (
	postgresSchemasQuery = `SELECT t.table_schema, t.table_name, t.table_type, c.column_name, c.data_type, c.is_nullable, c.ordinal_position
FROM information_schema.tables t
LEFT JOIN information_schema.columns c ON c.table_schema = t.table_schema AND c.table_name = t.table_name
WHERE t.table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY t.table_schema, t.table_name, c.ordinal_position`

	postgresPrincipalQuery = `SELECT current_user`
)

func newPostgresDriver(c *builders.Client) *sqlDriver {
	return &sqlDriver{
		c:              c,
		dialect:        dialect.Postgres,
		schemasQuery:   postgresSchemasQuery,
		principalQuery: postgresPrincipalQuery,
		tableType:      postgresTableType,
	}
}

// postgresTableType returns the table type based on the provided string.
func postgresTableType(typ string) catalog.TableType {
	switch strings.ToUpper(typ) {
	case "VIEW", "SYSTEM VIEW", "MATERIALIZED VIEW":
		return catalog.TableTypeView
	default:
		return catalog.TableTypeTable
	}
}

func jsonProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	return newJSONResponse(b)
}

// jsonResponse serves as a wrapper around the json response
// to pretty-print the return values
type jsonResponse struct {
	value []byte
}

func newJSONResponse(val []byte) *jsonResponse {
	return &jsonResponse{
		value: val,
	}
}

func (pj *jsonResponse) String() string {
	var parsed bytes.Buffer
	err := json.Indent(&parsed, pj.value, "", "  ")
	if err != nil {
		return string(pj.value)
	}
	return parsed.String()
}

func (pj *jsonResponse) MarshalJSON() ([]byte, error) {
	if json.Valid(pj.value) {
		return pj.value, nil
	}

	return json.Marshal(string(pj.value))
}
