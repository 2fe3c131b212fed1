// Package engine wires the storage layer and the tsql parser
// together behind the narrow surface the shell needs: opening a
// database, listing its tables, dumping raw pages, and running the
// single accepted SELECT shape.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sqlite-riir/sqlite-riir/internal/storage"
	"github.com/sqlite-riir/sqlite-riir/tsql"
	"github.com/sqlite-riir/sqlite-riir/tsql/ast"
)

// Engine is a read-only handle on one open database file.
type Engine struct {
	pager  *storage.Pager
	schema *storage.Schema
	log    *logrus.Logger
}

// Open validates and opens the database file at path and reads its
// schema.
func Open(path string, log *logrus.Logger) (*Engine, error) {
	pager, err := storage.Open(path, log)
	if err != nil {
		return nil, err
	}

	schema, err := storage.ReadSchema(pager)
	if err != nil {
		pager.Close()
		return nil, err
	}

	return &Engine{pager: pager, schema: schema, log: log}, nil
}

// OpenBytes opens a database held entirely in memory, used for the
// shell's built-in demo file rather than a path on disk.
func OpenBytes(data []byte, log *logrus.Logger) (*Engine, error) {
	pager, err := storage.OpenReaderAt(bytes.NewReader(data), int64(len(data)), log)
	if err != nil {
		return nil, err
	}

	schema, err := storage.ReadSchema(pager)
	if err != nil {
		return nil, err
	}

	return &Engine{pager: pager, schema: schema, log: log}, nil
}

// Close releases the underlying file handle.
func (e *Engine) Close() error {
	return e.pager.Close()
}

// TableDescriptions returns one formatted line per user table, in
// schema scan order: `Table <name>: "<create-sql>" @ <root-page>`.
func (e *Engine) TableDescriptions() []string {
	var lines []string
	for _, name := range e.schema.Tables() {
		if name == "sqlite_schema" {
			continue
		}
		info, _ := e.schema.Lookup(name)
		if info == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("Table %s: %q @ %d", info.Name, info.SQL, info.RootPage))
	}
	return lines
}

// DebugPages writes, for every page in the file, each leaf cell's row
// id and typed column values, or each interior cell's key and
// left-child page plus the page's right-most child.
func (e *Engine) DebugPages(w io.Writer) error {
	for n := 1; n <= e.pager.PageCount(); n++ {
		page, err := e.pager.Read(n)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "page %d (%s):\n", n, pageTypeName(page.Type()))

		switch page.Type() {
		case storage.PageTypeLeaf:
			for i := 0; i < page.CellCount(); i++ {
				rowID, record, err := page.ReadRecord(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  row %d: %s\n", rowID, formatFields(record.Fields))
			}
		case storage.PageTypeInternal:
			for i := 0; i < page.CellCount(); i++ {
				node, err := page.ReadInteriorNode(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  key %d: left-child %d\n", node.Key, node.LeftChild)
			}
			fmt.Fprintf(w, "  rightmost-child %d\n", page.RightPage())
		}
	}
	return nil
}

func pageTypeName(t storage.PageType) string {
	switch t {
	case storage.PageTypeLeaf:
		return "leaf"
	case storage.PageTypeInternal:
		return "internal"
	case storage.PageTypeLeafIndex:
		return "leaf-index"
	case storage.PageTypeInternalIndex:
		return "internal-index"
	default:
		return "unknown"
	}
}

func formatFields(fields []*storage.Field) string {
	vals := make([]interface{}, len(fields))
	for i, f := range fields {
		vals[i] = f.Data
	}
	return fmt.Sprintf("%v", vals)
}

// PageCount is the number of pages in the open file.
func (e *Engine) PageCount() int {
	return e.pager.PageCount()
}

// Page returns the decoded page for the given 1-based page number.
func (e *Engine) Page(n int) (*storage.MemPage, error) {
	return e.pager.Read(n)
}

// ExecuteSelect runs the single SELECT * FROM <table> shape this
// reader supports and returns every row of the named table. Anything
// wider (joins, filters, explicit column lists, non-SELECT
// statements) fails with a KindUnimplemented error. The parser only
// knows the SELECT grammar, so text it cannot parse fails the same
// way, wrapping the parse error.
func (e *Engine) ExecuteSelect(sql string) ([]*storage.Row, error) {
	stmt, err := tsql.Parse(sql)
	if err != nil {
		return nil, storage.NewError(storage.KindUnimplemented, "statement is not a supported SELECT", err)
	}

	selectStmt, ok := stmt.(*ast.SelectStatement)
	if !ok {
		return nil, unimplementedf("only SELECT statements are executed, got %T", stmt)
	}
	if len(selectStmt.From) != 1 || selectStmt.From[0].Alias != "" {
		return nil, unimplementedf("only a single unaliased table reference is executed")
	}
	if selectStmt.Filter != nil {
		return nil, unimplementedf("WHERE filters are not executed")
	}
	if len(selectStmt.Columns) != 1 || selectStmt.Columns[0] != "*" {
		return nil, unimplementedf("only SELECT * is executed")
	}

	tableName := selectStmt.From[0].Name
	info, ok := e.schema.Lookup(tableName)
	if !ok {
		return nil, storage.NewError(storage.KindUnknownTable, fmt.Sprintf("no such table: %s", tableName), nil)
	}

	it := storage.NewRowIter(e.pager, info.RootPage)
	var rows []*storage.Row
	for {
		row, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func unimplementedf(format string, args ...interface{}) error {
	return storage.NewError(storage.KindUnimplemented, fmt.Sprintf(format, args...), nil)
}
