package result

import (
	"math"
	"testing"
)

func twoColSet(rows ...Row) *Set {
	return &Set{Columns: []string{"dept", "cnt"}, Rows: rows}
}

func TestAccurateIgnoresRowOrder(t *testing.T) {
	gold := twoColSet(Row{"engineering", int64(2)}, Row{"hr", int64(1)}, Row{"sales", int64(2)})
	pred := twoColSet(Row{"sales", int64(2)}, Row{"engineering", int64(2)}, Row{"hr", int64(1)})

	if !Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("permuted rows should compare equal with ignore_order")
	}
	if Accurate(gold, pred, CompareOptions{IgnoreOrder: false, NullEqual: true}) {
		t.Fatalf("permuted rows should differ when order matters")
	}
}

func TestAccuratePrecisionTolerance(t *testing.T) {
	gold := &Set{Columns: []string{"v"}, Rows: []Row{{1.0000001}}}
	pred := &Set{Columns: []string{"v"}, Rows: []Row{{1.0000002}}}
	if !Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("floats differing beyond the 6th decimal digit should compare equal")
	}

	gold = &Set{Columns: []string{"v"}, Rows: []Row{{1.1}}}
	pred = &Set{Columns: []string{"v"}, Rows: []Row{{1.2}}}
	if Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("clearly different floats must not compare equal")
	}
}

func TestAccurateNullSentinels(t *testing.T) {
	gold := &Set{Columns: []string{"v"}, Rows: []Row{{nil}}}
	pred := &Set{Columns: []string{"v"}, Rows: []Row{{math.NaN()}}}
	if !Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("nil and NaN should both read as null under null_equal")
	}
}

func TestAccurateColumnNamesCaseInsensitive(t *testing.T) {
	gold := &Set{Columns: []string{"Dept"}, Rows: []Row{{"hr"}}}
	pred := &Set{Columns: []string{" dept "}, Rows: []Row{{"hr"}}}
	if !Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("column identity should ignore case and surrounding space")
	}
}

func TestAccurateFallsBackOnShapeError(t *testing.T) {
	// Rows wider than the column metadata cannot be compared as a table;
	// the row-tuple path must decide instead.
	gold := &Set{Columns: []string{"a"}, Rows: []Row{{int64(1), int64(2)}}}
	pred := &Set{Columns: []string{"x", "y"}, Rows: []Row{{int64(1), int64(2)}}}
	if !Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("row-tuple fallback should match identical tuples")
	}
}

func TestAccurateDifferentColumnNames(t *testing.T) {
	gold := &Set{Columns: []string{"a"}, Rows: []Row{{int64(1)}}}
	pred := &Set{Columns: []string{"b"}, Rows: []Row{{int64(1)}}}
	if Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("well-formed tables with different column names must not match")
	}
}

func TestAccurateTypeTagsPreventCollisions(t *testing.T) {
	gold := &Set{Columns: []string{"v"}, Rows: []Row{{"1"}}}
	pred := &Set{Columns: []string{"v"}, Rows: []Row{{int64(1)}}}
	if Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("the string \"1\" must not equal the integer 1")
	}
}

func TestAccurateRowCountMismatch(t *testing.T) {
	gold := &Set{Columns: []string{"v"}, Rows: []Row{{int64(1)}, {int64(2)}}}
	pred := &Set{Columns: []string{"v"}, Rows: []Row{{int64(1)}}}
	if Accurate(gold, pred, DefaultCompareOptions()) {
		t.Fatalf("different row counts must not match")
	}
}
