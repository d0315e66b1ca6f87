package metric

import (
	"context"
	"strings"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
)

// Executable scores 1.0 when the predicted SQL runs without error against
// the backend. Gold is not consulted.
type Executable struct {
	Backend backend.Backend
}

func (m *Executable) Name() string { return NameExecutable }

func (m *Executable) Measure(ctx context.Context, predSQL string, _ []string) Outcome {
	out := Outcome{Name: NameExecutable, Threshold: thresholdExact}
	sql := strings.TrimSpace(predSQL)
	if sql == "" {
		out.Score, out.Reason = score(0), "empty sql"
		return out
	}
	if _, err := m.Backend.RunToRows(ctx, sql); err != nil {
		out.Score, out.Reason = score(0), reasonFor(err)
		return out
	}
	out.Score, out.Reason = score(1), "ok"
	return out
}
