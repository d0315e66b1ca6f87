package sqlnorm

import (
	"testing"

	"github.com/pkg/errors"
)

func TestCanonicalEqualForSpellingVariants(t *testing.T) {
	a, err := Canonical("SELECT Name FROM Employees WHERE Salary > 100", "")
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	b, err := Canonical("select name from employees where salary > 100", "")
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	if a != b {
		t.Fatalf("case variants should canonicalize identically: %q vs %q", a, b)
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	once, err := Canonical("SELECT d.name AS dept, COUNT(*) AS cnt FROM employees e JOIN departments d ON e.dept_id = d.id GROUP BY d.name", "")
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	twice, err := Canonical(once, "")
	if err != nil {
		t.Fatalf("canonical of canonical: %v", err)
	}
	if once != twice {
		t.Fatalf("canonical form should be a fixed point: %q vs %q", once, twice)
	}
}

func TestCanonicalParseError(t *testing.T) {
	for _, sql := range []string{"", "   ", "SELEC name FROM t", "SELECT FROM WHERE"} {
		_, err := Canonical(sql, "")
		if err == nil {
			t.Fatalf("expected parse error for %q", sql)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError for %q, got %T", sql, err)
		}
	}
}

func TestCanonicalAnsiDialectQuotes(t *testing.T) {
	// Double quotes delimit identifiers in the ANSI family, not strings.
	got, err := Canonical(`SELECT "name" FROM employees`, "postgres")
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	want, err := Canonical("SELECT name FROM employees", "postgres")
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	if got != want {
		t.Fatalf("quoted identifier should canonicalize like the bare one: %q vs %q", got, want)
	}
}
