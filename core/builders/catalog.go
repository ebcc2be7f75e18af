package builders

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kndndrj/dbquery/catalog"
	"github.com/kndndrj/dbquery/core"
)

// SchemasFromResultStream converts the result stream of an introspection
// query to schemas. A result stream should return rows that are at least 2
// columns wide and have the following structure:
//
//	1st elem: schema name - string
//	2nd elem: table name - string
//	3rd elem: table type - string (optional, decoded with tableType)
//	4th elem: column name - string, nil or empty for tables without columns (optional)
//	5th elem: column type - string (optional)
//	6th elem: nullable - bool, "YES"/"NO", "Y"/"N" or number (optional)
//	7th elem: ordinal position - number (optional)
//
// Schemas and tables keep the order they first appear in. The stream is
// closed on return.
func SchemasFromResultStream(rows core.ResultStream, tableType func(string) catalog.TableType) ([]*catalog.Schema, error) {
	defer rows.Close()

	if tableType == nil {
		tableType = DefaultTableType
	}

	type tableEntry struct {
		name    string
		typ     catalog.TableType
		columns []*catalog.Column
		seen    map[string]struct{}
	}
	type schemaEntry struct {
		name   string
		tables []*tableEntry
		byName map[string]*tableEntry
	}

	var schemas []*schemaEntry
	bySchema := make(map[string]*schemaEntry)

	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, fmt.Errorf("rows.Next: %w", err)
		}
		if row == nil {
			break
		}

		if len(row) < 2 {
			return nil, errors.New("could not retrieve catalog: insufficient data")
		}

		schemaName, ok := asString(row[0])
		if !ok {
			return nil, errors.New("could not retrieve catalog: schema name not a string")
		}
		tableName, ok := asString(row[1])
		if !ok {
			return nil, errors.New("could not retrieve catalog: table name not a string")
		}

		s, ok := bySchema[schemaName]
		if !ok {
			s = &schemaEntry{name: schemaName, byName: make(map[string]*tableEntry)}
			bySchema[schemaName] = s
			schemas = append(schemas, s)
		}

		t, ok := s.byName[tableName]
		if !ok {
			t = &tableEntry{name: tableName, typ: catalog.TableTypeTable, seen: make(map[string]struct{})}
			if len(row) > 2 {
				if typ, ok := asString(row[2]); ok {
					t.typ = tableType(typ)
				}
			}
			s.byName[tableName] = t
			s.tables = append(s.tables, t)
		}

		if len(row) < 4 || row[3] == nil {
			continue
		}

		columnName, ok := asString(row[3])
		if !ok {
			return nil, errors.New("could not retrieve catalog: column name not a string")
		}
		if columnName == "" {
			continue
		}
		if _, dup := t.seen[columnName]; dup {
			continue
		}
		t.seen[columnName] = struct{}{}

		column := &catalog.Column{Name: columnName, Nullable: true}
		if len(row) > 4 {
			column.Type, _ = asString(row[4])
		}
		if len(row) > 5 && row[5] != nil {
			column.Nullable = asBool(row[5])
		}
		if len(row) > 6 {
			if ord, ok := toInt64(row[6]); ok {
				column.Ordinal = int(ord)
			}
		}

		t.columns = append(t.columns, column)
	}

	out := make([]*catalog.Schema, 0, len(schemas))
	for _, s := range schemas {
		tables := make([]*catalog.Table, 0, len(s.tables))
		for _, t := range s.tables {
			slices.SortStableFunc(t.columns, func(a, b *catalog.Column) int {
				return a.Ordinal - b.Ordinal
			})

			table, err := catalog.NewTable(t.name, t.typ, t.columns...)
			if err != nil {
				return nil, fmt.Errorf("catalog.NewTable: %w", err)
			}
			tables = append(tables, table)
		}

		schema, err := catalog.NewSchema(s.name, tables...)
		if err != nil {
			return nil, fmt.Errorf("catalog.NewSchema: %w", err)
		}
		out = append(out, schema)
	}

	return out, nil
}

// DefaultTableType decodes the table types reported by information_schema
// style catalogs.
func DefaultTableType(typ string) catalog.TableType {
	t := strings.ToUpper(strings.TrimSpace(typ))
	switch {
	case t == "":
		return catalog.TableTypeTable
	case strings.Contains(t, "VIEW"), t == "V":
		return catalog.TableTypeView
	default:
		return catalog.TableTypeTable
	}
}

func asString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []byte:
		return strings.TrimSpace(string(v)), true
	default:
		return "", false
	}
}

func asBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "YES", "Y", "TRUE", "T", "1":
			return true
		}
		return false
	case []byte:
		return asBool(string(v))
	default:
		i, ok := toInt64(val)
		return ok && i != 0
	}
}
