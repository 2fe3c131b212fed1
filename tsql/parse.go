package tsql

import (
	"github.com/sqlite-riir/sqlite-riir/tsql/ast"
	"github.com/sqlite-riir/sqlite-riir/tsql/parser"
)

// Parse parses TinySQL language and produces an AST.
func Parse(sql string) (ast.Statement, error) {
	return parser.ParseStatement(sql)
}
