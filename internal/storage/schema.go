package storage

import (
	"io"

	"github.com/armon/go-radix"
)

// schemaRootPage is always page 1: the root of the table btree that
// stores the database's own schema (sqlite_schema / sqlite_master).
const schemaRootPage = 1

// TableInfo is one table's entry in the schema: its name, the root
// page of its own table btree, and the CREATE TABLE text it was
// defined with.
type TableInfo struct {
	Name     string
	RootPage int
	SQL      string
}

// Schema is the database's table directory, built once from a full
// scan of the schema table. Lookups go through a radix tree keyed by
// table name so cost scales with name length rather than table
// count, instead of a linear rescan per lookup.
type Schema struct {
	tables *radix.Tree
	order  []string
}

// ReadSchema scans the schema table rooted at page 1 and indexes
// every row whose type column is "table".
func ReadSchema(pager *Pager) (*Schema, error) {
	s := &Schema{tables: radix.New()}
	s.tables.Insert("sqlite_schema", &TableInfo{Name: "sqlite_schema", RootPage: schemaRootPage})

	it := NewRowIter(pager, schemaRootPage)
	for {
		row, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(row.Fields) < 4 {
			continue
		}

		typeName, _ := row.Fields[0].Data.(string)
		if typeName != "table" {
			continue
		}

		// Column 3 (index 2) is table-name/tbl_name, not column 2
		// (index 1)'s name: for ordinary tables the two coincide, but
		// they are distinct schema columns and tbl_name is the one
		// this lookup is keyed on.
		name, _ := row.Fields[2].Data.(string)
		rootPage, ok := row.Fields[3].Data.(int64)
		if !ok || name == "" {
			continue
		}
		var sql string
		if len(row.Fields) > 4 {
			sql, _ = row.Fields[4].Data.(string)
		}

		s.tables.Insert(name, &TableInfo{Name: name, RootPage: int(rootPage), SQL: sql})
		s.order = append(s.order, name)
	}

	return s, nil
}

// Lookup returns the named table's schema entry, or ok=false if no
// such table exists.
func (s *Schema) Lookup(name string) (*TableInfo, bool) {
	v, ok := s.tables.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*TableInfo), true
}

// Tables returns every table name in schema scan order: the schema
// table itself first, then every "table"-typed row in the order it
// was read from page 1.
func (s *Schema) Tables() []string {
	names := make([]string, 0, len(s.order)+1)
	names = append(names, "sqlite_schema")
	names = append(names, s.order...)
	return names
}
