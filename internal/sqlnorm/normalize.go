// Package sqlnorm canonicalizes SQL text and decomposes statements into
// comparable structural components using the TiDB parser.
package sqlnorm

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	"github.com/pingcap/tidb/pkg/parser/mysql"
	_ "github.com/pingcap/tidb/pkg/types/parser_driver" // Register TiDB parser driver.
)

// ParseError reports SQL that could not be parsed into an AST.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Canonical restore keeps literal quoting stable and lowers keywords and
// names, so two spellings of the same statement restore to identical text.
const canonicalRestoreFlags = format.RestoreStringSingleQuotes |
	format.RestoreKeyWordLowercase |
	format.RestoreNameLowercase |
	format.RestoreStringWithoutCharset

// Canonical parses sql and re-emits it in canonical textual form. The
// result is idempotent: canonicalizing it again yields the same string.
func Canonical(sqlText, dialect string) (string, error) {
	stmt, err := parseOne(sqlText, dialect)
	if err != nil {
		return "", err
	}
	return restoreNode(stmt)
}

func parseOne(sqlText, dialect string) (ast.StmtNode, error) {
	if strings.TrimSpace(sqlText) == "" {
		return nil, &ParseError{Err: errEmptyStatement}
	}
	stmt, err := newParser(dialect).ParseOneStmt(sqlText, "", "")
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return stmt, nil
}

var errEmptyStatement = stringError("empty statement")

type stringError string

func (e stringError) Error() string { return string(e) }

// newParser returns a parser configured for the dialect hint. The TiDB
// parser speaks the MySQL family natively; ANSI-flavored dialects get
// double-quoted identifiers via SQL mode. An unknown hint falls back to
// best-effort default parsing rather than failing.
func newParser(dialect string) *parser.Parser {
	p := parser.New()
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "ansi", "postgres", "postgresql", "trino", "snowflake", "bigquery":
		p.SetSQLMode(mysql.ModeANSIQuotes)
	}
	return p
}

func restoreNode(node ast.Node) (string, error) {
	var sb strings.Builder
	ctx := format.NewRestoreCtx(canonicalRestoreFlags, &sb)
	if err := node.Restore(ctx); err != nil {
		return "", &ParseError{Err: err}
	}
	return sb.String(), nil
}
