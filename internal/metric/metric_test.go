package metric

import (
	"context"
	"strings"
	"testing"

	"github.com/kyungjunleeme/Text2SQL/internal/fixture"
	"github.com/kyungjunleeme/Text2SQL/internal/result"
	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
)

func tokens(items ...string) sqlnorm.TokenSet {
	s := sqlnorm.TokenSet{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		name string
		a, b sqlnorm.TokenSet
		want float64
	}{
		{"both empty", tokens(), tokens(), 1.0},
		{"one empty", tokens("a"), tokens(), 0.0},
		{"disjoint", tokens("a"), tokens("b"), 0.0},
		{"identical", tokens("a", "b"), tokens("a", "b"), 1.0},
		{"half", tokens("a", "b", "c"), tokens("a", "b", "d"), 0.5},
	}
	for _, tc := range cases {
		if got := Jaccard(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		if got := Jaccard(tc.b, tc.a); got != tc.want {
			t.Fatalf("%s (swapped): got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExecutableMetric(t *testing.T) {
	ctx := context.Background()
	b, err := fixture.Open(ctx)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer b.Close()

	m := &Executable{Backend: b}

	out := m.Measure(ctx, "SELECT COUNT(*) FROM employees", nil)
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("valid query should be executable: %+v", out)
	}

	out = m.Measure(ctx, "", nil)
	if out.Score == nil || *out.Score != 0.0 || out.Reason != "empty sql" {
		t.Fatalf("empty prediction: %+v", out)
	}

	out = m.Measure(ctx, "SELECT * FROM missing_table", nil)
	if out.Score == nil || *out.Score != 0.0 {
		t.Fatalf("query against a missing table should fail: %+v", out)
	}
	if !strings.Contains(out.Reason, "exec error") {
		t.Fatalf("expected exec error reason, got %q", out.Reason)
	}
}

func TestExecutionAccuracyFixture(t *testing.T) {
	ctx := context.Background()
	b, err := fixture.Open(ctx)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer b.Close()

	_, golds, pred := fixture.SampleCase()
	m := &ExecutionAccuracy{Backend: b, Opts: result.DefaultCompareOptions()}

	out := m.Measure(ctx, pred, golds)
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("reordered join with COUNT(1) returns the same rows: %+v", out)
	}

	out = m.Measure(ctx, "SELECT name FROM departments", golds)
	if out.Score == nil || *out.Score != 0.0 {
		t.Fatalf("unrelated query must not match: %+v", out)
	}
}

func TestExecutionAccuracyMultiGoldBestOf(t *testing.T) {
	ctx := context.Background()
	b, err := fixture.Open(ctx)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer b.Close()

	m := &ExecutionAccuracy{Backend: b, Opts: result.DefaultCompareOptions()}
	golds := []string{
		"SELECT name FROM departments ORDER BY id",
		"SELECT COUNT(*) AS n FROM employees",
	}
	out := m.Measure(ctx, "SELECT COUNT(*) AS n FROM employees", golds)
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("any matching candidate should win: %+v", out)
	}
}

func TestExecutionAccuracySkipsBrokenGold(t *testing.T) {
	ctx := context.Background()
	b, err := fixture.Open(ctx)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer b.Close()

	m := &ExecutionAccuracy{Backend: b, Opts: result.DefaultCompareOptions()}
	golds := []string{
		"SELECT * FROM no_such_table",
		"SELECT COUNT(*) AS n FROM employees",
	}
	out := m.Measure(ctx, "SELECT COUNT(*) AS n FROM employees", golds)
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("a broken gold candidate is skipped, not fatal: %+v", out)
	}
}

func TestSemanticMatch(t *testing.T) {
	ctx := context.Background()
	m := &SemanticMatch{}

	out := m.Measure(ctx, "select NAME from EMPLOYEES", []string{"SELECT name FROM employees"})
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("case variants should canonicalize to equal text: %+v", out)
	}

	out = m.Measure(ctx, "SELECT name FROM employees WHERE salary > 100", []string{"SELECT name FROM employees"})
	if out.Score == nil || *out.Score != 0.5 {
		t.Fatalf("substring relation should score 0.5: %+v", out)
	}

	out = m.Measure(ctx, "SELECT id FROM departments", []string{"SELECT salary FROM employees"})
	if out.Score == nil || *out.Score != 0.0 {
		t.Fatalf("unrelated queries should score 0: %+v", out)
	}

	out = m.Measure(ctx, "not sql at all", []string{"SELECT 1"})
	if out.Score == nil || *out.Score != 0.0 || !strings.Contains(out.Reason, "parse error") {
		t.Fatalf("unparsable prediction: %+v", out)
	}
}

func TestSemanticMatchBestCandidateWins(t *testing.T) {
	m := &SemanticMatch{}
	golds := []string{
		"SELECT id FROM departments",
		"SELECT name FROM employees",
	}
	out := m.Measure(context.Background(), "SELECT name FROM employees", golds)
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("the best gold candidate decides the score: %+v", out)
	}
}

func TestComponentMatchFixtureScenario(t *testing.T) {
	_, golds, pred := fixture.SampleCase()
	m := &ComponentMatch{}

	out := m.Measure(context.Background(), pred, golds)
	if out.Score == nil {
		t.Fatalf("component match should always produce a score: %+v", out)
	}
	if *out.Score < 0.85 {
		t.Fatalf("join reorder and COUNT(1) keep the structure intact, got %v", *out.Score)
	}
	if out.Details == nil {
		t.Fatalf("best candidate breakdown missing: %+v", out)
	}
	if out.Details[string(sqlnorm.KindTables)] != 1.0 {
		t.Fatalf("table sets are identical, got detail %v", out.Details)
	}
}

func TestComponentMatchWeightsRenormalize(t *testing.T) {
	m := &ComponentMatch{Weights: map[sqlnorm.Kind]float64{sqlnorm.KindTables: 0.2}}
	out := m.Measure(context.Background(), "SELECT a FROM t", []string{"SELECT b FROM t"})
	if out.Score == nil || *out.Score != 1.0 {
		t.Fatalf("with only the table weight supplied, identical tables score 1.0: %+v", out)
	}
}

func TestComponentMatchParseError(t *testing.T) {
	m := &ComponentMatch{}
	out := m.Measure(context.Background(), "garbage(((", []string{"SELECT 1"})
	if out.Score == nil || *out.Score != 0.0 || !strings.Contains(out.Reason, "parse error") {
		t.Fatalf("unparsable prediction: %+v", out)
	}
}

func TestZeroOutcomeThresholds(t *testing.T) {
	if o := ZeroOutcome(NameComponentMatch, "x"); o.Threshold != 0.85 {
		t.Fatalf("component threshold: %+v", o)
	}
	if o := ZeroOutcome(NameExecutable, "x"); o.Threshold != 1.0 {
		t.Fatalf("exact threshold: %+v", o)
	}
	if o := ZeroOutcome(NameExecutable, "x"); o.Passed() {
		t.Fatalf("zero outcome must not pass")
	}
}
