// Package metric implements the per-case scoring units: executability,
// execution accuracy, semantic match and component match.
package metric

import (
	"context"

	"github.com/pkg/errors"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/result"
	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
)

// Outcome is the result of one metric for one test case. A nil Score means
// the metric could not be computed and is treated as failing.
type Outcome struct {
	Name      string             `json:"name"`
	Score     *float64           `json:"score"`
	Threshold float64            `json:"threshold"`
	Reason    string             `json:"reason"`
	Details   map[string]float64 `json:"details,omitempty"`
}

// Passed reports whether the metric met its threshold.
func (o Outcome) Passed() bool {
	return o.Score != nil && *o.Score >= o.Threshold
}

// Metric scores one prediction against the gold candidates of a test case.
// A metric converts failures local to its own computation into a zero score
// with a reason; it never aborts the surrounding evaluation.
type Metric interface {
	Name() string
	Measure(ctx context.Context, predSQL string, golds []string) Outcome
}

// Metric names as they appear in reports. Downstream consumers key on
// these.
const (
	NameExecutable      = "executable_sql"
	NameExecutionAcc    = "execution_accuracy"
	NameSemanticMatch   = "semantic_match_sql"
	NameComponentMatch  = "component_match_sql"
	thresholdExact      = 1.0
	thresholdComponents = 0.85
)

func score(v float64) *float64 {
	return &v
}

// ZeroOutcome returns a failed outcome for the named metric with its usual
// threshold, used when the orchestrator has to backfill a case.
func ZeroOutcome(name, reason string) Outcome {
	threshold := thresholdExact
	if name == NameComponentMatch {
		threshold = thresholdComponents
	}
	return Outcome{Name: name, Score: score(0), Threshold: threshold, Reason: reason}
}

// reasonFor folds the error taxonomy into one human-readable reason string
// so metrics do not invent ad hoc messages.
func reasonFor(err error) string {
	var pe *sqlnorm.ParseError
	var ee *backend.ExecutionError
	var ce *result.ComparisonError
	switch {
	case errors.As(err, &pe):
		return "parse error: " + pe.Err.Error()
	case errors.As(err, &ee):
		return "exec error: " + ee.Err.Error()
	case errors.As(err, &ce):
		return "comparison error: " + ce.Msg
	default:
		return err.Error()
	}
}
