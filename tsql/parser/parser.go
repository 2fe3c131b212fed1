package parser

import (
	"errors"
	"fmt"

	"github.com/sqlite-riir/sqlite-riir/tsql/ast"
	"github.com/sqlite-riir/sqlite-riir/tsql/scan"
)

// topLevelStatements lists the statement forms this parser recognizes.
// Only SELECT is attempted: the rest of the grammar (CREATE, INSERT,
// transactions) belongs to a write path this reader never exercises.
var topLevelStatements = []struct {
	Name  string
	Parse func(scanner scan.TinyScanner) (ast.Statement, bool, error)
}{
	{
		Name: "SELECT",
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseSelect(scanner)
			return s, s != nil, err
		},
	},
}

// ParseStatement parses a string of sql and produces a statement or parse failure.
func ParseStatement(sql string) (ast.Statement, error) {
	scanner := scan.NewScanner(sql)

	for _, p := range topLevelStatements {
		stmt, ok, err := p.Parse(scanner)
		if err != nil {
			return nil, fmt.Errorf("[%s] parse error at character: %d\nparsed:\n\t%s",
				p.Name, scanner.Pos(), scanner.Committed())
		}
		if ok {
			return stmt, nil
		}
		scanner.Reset()
	}

	return nil, errors.New("invalid tsql program")
}
