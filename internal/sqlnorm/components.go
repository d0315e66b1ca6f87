package sqlnorm

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"
)

// Kind identifies one structural component family of a query.
type Kind string

const (
	KindTables     Kind = "tables"
	KindColumns    Kind = "columns"
	KindAggregates Kind = "aggregates"
	KindJoins      Kind = "joins"
	KindPredicates Kind = "predicates"
	KindGroupBy    Kind = "group_by"
	KindOrderBy    Kind = "order_by"
)

// Kinds lists every component kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindTables, KindColumns, KindAggregates, KindJoins, KindPredicates, KindGroupBy, KindOrderBy}
}

// TokenSet is a set of canonicalized component tokens.
type TokenSet map[string]struct{}

// Add inserts a non-empty token.
func (s TokenSet) Add(token string) {
	if token == "" {
		return
	}
	s[token] = struct{}{}
}

// Has reports whether the set contains token.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// ComponentSet maps each component kind to its extracted tokens. Sets of
// different kinds are never compared to each other.
type ComponentSet map[Kind]TokenSet

func newComponentSet() ComponentSet {
	set := make(ComponentSet, len(Kinds()))
	for _, k := range Kinds() {
		set[k] = TokenSet{}
	}
	return set
}

// Get returns the token set for a kind, never nil.
func (c ComponentSet) Get(kind Kind) TokenSet {
	if s, ok := c[kind]; ok {
		return s
	}
	return TokenSet{}
}

// Extract parses sql and collects its structural components. Tokens are
// lower-cased and whitespace-normalized so structurally identical fragments
// compare as string-equal. A parse failure propagates to the caller; it is
// not the same thing as a query with no components.
func Extract(sqlText, dialect string) (ComponentSet, error) {
	stmt, err := parseOne(sqlText, dialect)
	if err != nil {
		return nil, err
	}
	set := newComponentSet()

	v := &componentVisitor{set: set}
	stmt.Accept(v)
	if v.err != nil {
		return nil, v.err
	}

	// WHERE, HAVING, GROUP BY and ORDER BY are taken from the statement
	// itself, not from subqueries: an inner filter is not the query's
	// predicate.
	if sel, ok := stmt.(*ast.SelectStmt); ok {
		if err := collectClauses(sel, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// componentVisitor walks the whole statement, subqueries included, and
// gathers tables, joins, and the identifiers and aggregate functions inside
// selected expressions.
type componentVisitor struct {
	set ComponentSet
	err error
}

func (v *componentVisitor) Enter(n ast.Node) (ast.Node, bool) {
	if v.err != nil {
		return n, true
	}
	switch node := n.(type) {
	case *ast.TableSource:
		v.set[KindTables].Add(tableToken(node))
	case *ast.Join:
		// A single FROM table parses as a Join with no right side.
		if node.Right != nil {
			tok, err := joinToken(node)
			if err != nil {
				v.err = err
				return n, true
			}
			v.set[KindJoins].Add(tok)
		}
	case *ast.SelectStmt:
		if node.Fields != nil {
			for _, field := range node.Fields.Fields {
				v.collectField(field)
			}
		}
	}
	return n, false
}

func (v *componentVisitor) Leave(n ast.Node) (ast.Node, bool) {
	return n, v.err == nil
}

func (v *componentVisitor) collectField(field *ast.SelectField) {
	if field.WildCard != nil || field.Expr == nil {
		return
	}
	fc := &fieldCollector{set: v.set}
	field.Expr.Accept(fc)
	v.set[KindColumns].Add(field.AsName.L)
}

// fieldCollector records every identifier and aggregate function name
// appearing inside one selected expression, including inside nested calls
// and scalar subqueries.
type fieldCollector struct {
	set ComponentSet
}

func (c *fieldCollector) Enter(n ast.Node) (ast.Node, bool) {
	switch node := n.(type) {
	case *ast.ColumnNameExpr:
		if node.Name != nil {
			c.set[KindColumns].Add(node.Name.Table.L)
			c.set[KindColumns].Add(node.Name.Name.L)
		}
	case *ast.AggregateFuncExpr:
		c.set[KindAggregates].Add(strings.ToLower(node.F))
	}
	return n, false
}

func (c *fieldCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// tableToken returns the alias-or-name of a table reference. An unaliased
// derived table has neither and contributes nothing.
func tableToken(node *ast.TableSource) string {
	if node.AsName.L != "" {
		return node.AsName.L
	}
	if tn, ok := node.Source.(*ast.TableName); ok {
		return tn.Name.L
	}
	return ""
}

// joinToken renders one join clause as kind plus the canonical text of its
// ON condition. Two joins of the same kind with different ON text stay
// distinct tokens.
func joinToken(node *ast.Join) (string, error) {
	kind := "join"
	switch node.Tp {
	case ast.LeftJoin:
		kind = "left"
	case ast.RightJoin:
		kind = "right"
	}
	if node.NaturalJoin {
		kind = "natural " + kind
	}
	if node.On != nil && node.On.Expr != nil {
		txt, err := restoreNode(node.On.Expr)
		if err != nil {
			return "", err
		}
		return kind + ":" + txt, nil
	}
	if len(node.Using) > 0 {
		names := make([]string, 0, len(node.Using))
		for _, col := range node.Using {
			names = append(names, col.Name.L)
		}
		return kind + ":using(" + strings.Join(names, ",") + ")", nil
	}
	return kind, nil
}

func collectClauses(sel *ast.SelectStmt, set ComponentSet) error {
	if sel.Where != nil {
		txt, err := restoreNode(sel.Where)
		if err != nil {
			return err
		}
		set[KindPredicates].Add(txt)
	}
	if sel.Having != nil && sel.Having.Expr != nil {
		txt, err := restoreNode(sel.Having.Expr)
		if err != nil {
			return err
		}
		set[KindPredicates].Add(txt)
	}
	if sel.GroupBy != nil {
		for _, item := range sel.GroupBy.Items {
			txt, err := restoreNode(item.Expr)
			if err != nil {
				return err
			}
			set[KindGroupBy].Add(strings.ToLower(txt))
		}
	}
	if sel.OrderBy != nil {
		for _, item := range sel.OrderBy.Items {
			txt, err := restoreNode(item)
			if err != nil {
				return err
			}
			set[KindOrderBy].Add(strings.ToLower(txt))
		}
	}
	return nil
}
