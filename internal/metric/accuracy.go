package metric

import (
	"context"
	"strings"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/result"
)

// ExecutionAccuracy executes both queries and compares their result sets.
// Gold candidates are tried in input order and the first match wins. A gold
// candidate that itself fails to execute is skipped, not fatal.
type ExecutionAccuracy struct {
	Backend backend.Backend
	Opts    result.CompareOptions
}

func (m *ExecutionAccuracy) Name() string { return NameExecutionAcc }

func (m *ExecutionAccuracy) Measure(ctx context.Context, predSQL string, golds []string) Outcome {
	out := Outcome{Name: NameExecutionAcc, Threshold: thresholdExact}
	sql := strings.TrimSpace(predSQL)
	if sql == "" {
		out.Score, out.Reason = score(0), "empty sql"
		return out
	}

	var lastErr error
	for _, gold := range golds {
		goldSet, err := backend.RunToTable(ctx, m.Backend, gold)
		if err != nil {
			lastErr = err
			continue
		}
		predSet, err := backend.RunToTable(ctx, m.Backend, sql)
		if err != nil {
			lastErr = err
			continue
		}
		if result.Accurate(goldSet, predSet, m.Opts) {
			out.Score, out.Reason = score(1), "match(candidate)"
			return out
		}
	}

	out.Score = score(0)
	if lastErr != nil && len(golds) > 0 {
		out.Reason = "mismatch(all candidates); last error: " + reasonFor(lastErr)
	} else {
		out.Reason = "mismatch(all candidates)"
	}
	return out
}
