// Package catalog holds the in-memory schema/table/column metadata of a
// connection.
package catalog

import "fmt"

type TableType int

const (
	TableTypeNone TableType = iota
	TableTypeTable
	TableTypeView
)

func (t TableType) String() string {
	switch t {
	case TableTypeTable:
		return "table"
	case TableTypeView:
		return "view"
	default:
		return ""
	}
}

// Column is a single column of a table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	// Ordinal is the 1-based position of the column within its table.
	Ordinal int

	table *Table
}

// Table returns the owning table.
func (c *Column) Table() *Table {
	return c.table
}

type Table struct {
	Name string
	Type TableType

	columns []*Column
	byName  map[string]*Column
	schema  *Schema
}

// NewTable creates a table from the provided columns. Columns keep the
// provided order, ordinals of zero are filled in from the position.
// A column can belong to a single table. On error no column is modified.
func NewTable(name string, typ TableType, columns ...*Column) (*Table, error) {
	t := &Table{
		Name:   name,
		Type:   typ,
		byName: make(map[string]*Column, len(columns)),
	}

	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("nil column at position %d in table %q", i, name)
		}
		if c.table != nil {
			return nil, fmt.Errorf("column %q already belongs to table %q", c.Name, c.table.Name)
		}
		if _, ok := t.byName[c.Name]; ok {
			return nil, fmt.Errorf("duplicate column %q in table %q", c.Name, name)
		}
		t.byName[c.Name] = c
		t.columns = append(t.columns, c)
	}

	for i, c := range t.columns {
		if c.Ordinal == 0 {
			c.Ordinal = i + 1
		}
		c.table = t
	}

	return t, nil
}

// Schema returns the owning schema. It is nil for detached tables.
func (t *Table) Schema() *Schema {
	return t.schema
}

func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Name
	}
	return out
}

func (t *Table) ColumnByName(name string) (*Column, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: KindColumn, Name: name, Parent: t.Name}
	}
	return c, nil
}

type Schema struct {
	Name string

	tables []*Table
	byName map[string]*Table
}

func NewSchema(name string, tables ...*Table) (*Schema, error) {
	s := &Schema{
		Name:   name,
		byName: make(map[string]*Table, len(tables)),
	}

	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("nil table at position %d in schema %q", i, name)
		}
		if t.schema != nil {
			return nil, fmt.Errorf("table %q already belongs to schema %q", t.Name, t.schema.Name)
		}
		if _, ok := s.byName[t.Name]; ok {
			return nil, fmt.Errorf("duplicate table %q in schema %q", t.Name, name)
		}
		s.byName[t.Name] = t
		s.tables = append(s.tables, t)
	}

	for _, t := range s.tables {
		t.schema = s
	}

	return s, nil
}

func (s *Schema) Tables() []*Table {
	out := make([]*Table, len(s.tables))
	copy(out, s.tables)
	return out
}

func (s *Schema) TableNames() []string {
	out := make([]string, len(s.tables))
	for i, t := range s.tables {
		out[i] = t.Name
	}
	return out
}

func (s *Schema) TableByName(name string) (*Table, error) {
	t, ok := s.byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: KindTable, Name: name, Parent: s.Name}
	}
	return t, nil
}

// Catalog is the metadata cache of a single connection. It is never
// modified after construction.
type Catalog struct {
	schemas []*Schema
	byName  map[string]*Schema
}

func NewCatalog(schemas ...*Schema) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]*Schema, len(schemas)),
	}

	for i, s := range schemas {
		if s == nil {
			return nil, fmt.Errorf("nil schema at position %d", i)
		}
		if _, ok := c.byName[s.Name]; ok {
			return nil, fmt.Errorf("duplicate schema %q", s.Name)
		}
		c.byName[s.Name] = s
		c.schemas = append(c.schemas, s)
	}

	return c, nil
}

func (c *Catalog) Schemas() []*Schema {
	out := make([]*Schema, len(c.schemas))
	copy(out, c.schemas)
	return out
}

func (c *Catalog) SchemaNames() []string {
	out := make([]string, len(c.schemas))
	for i, s := range c.schemas {
		out[i] = s.Name
	}
	return out
}

func (c *Catalog) SchemaByName(name string) (*Schema, error) {
	s, ok := c.byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: KindSchema, Name: name}
	}
	return s, nil
}

// TableByName looks up a table in the named schema.
func (c *Catalog) TableByName(schema, table string) (*Table, error) {
	s, err := c.SchemaByName(schema)
	if err != nil {
		return nil, err
	}
	return s.TableByName(table)
}

// ResolveDefaultSchema returns the schema belonging to the connected
// principal. The principal is passed through normalize (dialect case rules)
// before the lookup. If no such schema exists, the first existing fallback
// is used, then the only schema of a single-schema catalog.
func (c *Catalog) ResolveDefaultSchema(principal string, normalize func(string) string, fallbacks ...string) (*Schema, error) {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}

	if principal != "" {
		if s, ok := c.byName[normalize(principal)]; ok {
			return s, nil
		}
	}

	for _, name := range fallbacks {
		if s, ok := c.byName[name]; ok {
			return s, nil
		}
	}

	if len(c.schemas) == 1 {
		return c.schemas[0], nil
	}

	return nil, &NotFoundError{Kind: KindSchema, Name: normalize(principal)}
}
