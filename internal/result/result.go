// Package result models executed query results and decides whether two of
// them represent the same answer.
package result

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one result row. Cells hold canonical scalars only: nil, bool,
// int64, float64 or string.
type Row []any

// Set is an ordered sequence of rows with their column names. Column names
// carry presentation metadata; they matter for the tabular comparison path
// and are ignored by the row-tuple path.
type Set struct {
	Columns []string
	Rows    []Row
}

// NumRows returns the number of rows.
func (s *Set) NumRows() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// nullSentinel stands in for every null-like cell when null equality is on,
// so that nulls from different engines compare equal.
const nullSentinel = "\x00null"

const cellSep = "\x1f"

// encodeRow renders a row as a single comparable key. Cells are type-tagged
// so that the string "1" and the integer 1 never collide.
func encodeRow(row Row, opts CompareOptions) string {
	parts := make([]string, 0, len(row))
	for _, v := range row {
		parts = append(parts, encodeCell(normalizeCell(v, opts)))
	}
	return strings.Join(parts, cellSep)
}

func encodeCell(v any) string {
	switch c := v.(type) {
	case nil:
		return "n:"
	case bool:
		if c {
			return "b:1"
		}
		return "b:0"
	case int64:
		return "i:" + strconv.FormatInt(c, 10)
	case float64:
		return "f:" + strconv.FormatFloat(c, 'f', 6, 64)
	case string:
		if c == nullSentinel {
			return "n:"
		}
		return "s:" + c
	default:
		// Backends canonicalize scalars before returning; anything else is
		// rendered through its string form.
		return "s:" + fmt.Sprint(c)
	}
}

// normalizeCell absorbs representational noise that is not user-visible:
// NaN collapses to null, floats are rounded to 6 decimal digits, and nulls
// map to a shared sentinel when null equality is enabled.
func normalizeCell(v any, opts CompareOptions) any {
	switch c := v.(type) {
	case nil:
		if opts.NullEqual {
			return nullSentinel
		}
		return nil
	case float64:
		if math.IsNaN(c) {
			if opts.NullEqual {
				return nullSentinel
			}
			return nil
		}
		return math.Round(c*1e6) / 1e6
	case float32:
		return normalizeCell(float64(c), opts)
	case int:
		return int64(c)
	case int32:
		return int64(c)
	default:
		return v
	}
}

// normalizeColumn lower-cases and trims a column name.
func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
