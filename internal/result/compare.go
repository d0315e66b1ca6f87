package result

import (
	"sort"

	"github.com/pkg/errors"
)

// CompareOptions controls how two result sets are normalized before they
// are compared.
type CompareOptions struct {
	// IgnoreOrder sorts rows by their full tuple of canonicalized values
	// before comparison. Callers cannot rely on result ordering unless they
	// disable this.
	IgnoreOrder bool
	// NullEqual maps every null-like cell to one sentinel so two nulls
	// compare equal across engines.
	NullEqual bool
}

// DefaultCompareOptions returns the options used by execution accuracy
// unless the run configuration overrides them.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{IgnoreOrder: true, NullEqual: true}
}

// ComparisonError reports a result pair the tabular comparison path cannot
// represent, e.g. a shape mismatch between columns and rows.
type ComparisonError struct {
	Msg string
}

func (e *ComparisonError) Error() string { return "comparison: " + e.Msg }

// Accurate reports whether pred represents the same answer as gold. The
// column-aware tabular path is tried first; when it fails structurally the
// raw row-tuple path decides instead. Engines disagree on result metadata
// far more often than on row content, so the fallback buys leniency without
// giving up soundness.
func Accurate(gold, pred *Set, opts CompareOptions) bool {
	ok, err := compareTabular(gold, pred, opts)
	if err != nil {
		return compareRows(gold, pred, opts)
	}
	return ok
}

// compareTabular compares the two sets as tables: same column count, same
// normalized column names, and cell-wise equal rows after normalization.
func compareTabular(gold, pred *Set, opts CompareOptions) (bool, error) {
	if gold == nil || pred == nil {
		return false, &ComparisonError{Msg: "nil result set"}
	}
	if len(gold.Columns) != len(pred.Columns) {
		return false, &ComparisonError{Msg: "column count mismatch"}
	}
	if err := checkShape(gold); err != nil {
		return false, err
	}
	if err := checkShape(pred); err != nil {
		return false, err
	}
	for i := range gold.Columns {
		if normalizeColumn(gold.Columns[i]) != normalizeColumn(pred.Columns[i]) {
			return false, nil
		}
	}
	return equalRows(gold.Rows, pred.Rows, opts), nil
}

// compareRows ignores column names entirely and compares only the row
// tuples.
func compareRows(gold, pred *Set, opts CompareOptions) bool {
	if gold == nil || pred == nil {
		return false
	}
	return equalRows(gold.Rows, pred.Rows, opts)
}

func equalRows(gold, pred []Row, opts CompareOptions) bool {
	if len(gold) != len(pred) {
		return false
	}
	g := encodeRows(gold, opts)
	p := encodeRows(pred, opts)
	if opts.IgnoreOrder {
		sort.Strings(g)
		sort.Strings(p)
	}
	for i := range g {
		if g[i] != p[i] {
			return false
		}
	}
	return true
}

func encodeRows(rows []Row, opts CompareOptions) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, encodeRow(row, opts))
	}
	return out
}

func checkShape(s *Set) error {
	for _, row := range s.Rows {
		if len(row) != len(s.Columns) {
			return errors.WithStack(&ComparisonError{Msg: "row width does not match column count"})
		}
	}
	return nil
}
