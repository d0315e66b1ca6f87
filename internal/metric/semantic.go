package metric

import (
	"context"
	"strings"

	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
)

// SemanticMatch canonicalizes both sides via parse and re-emit and compares
// the canonical text. Exact equality scores 1.0; a substring relation in
// either direction scores 0.5 as a deliberately coarse near-miss signal.
type SemanticMatch struct {
	Dialect string
}

func (m *SemanticMatch) Name() string { return NameSemanticMatch }

func (m *SemanticMatch) Measure(_ context.Context, predSQL string, golds []string) Outcome {
	out := Outcome{Name: NameSemanticMatch, Threshold: thresholdExact}
	predNorm, err := sqlnorm.Canonical(predSQL, m.Dialect)
	if err != nil {
		out.Score, out.Reason = score(0), reasonFor(err)
		return out
	}

	best := 0.0
	for _, gold := range golds {
		goldNorm, err := sqlnorm.Canonical(gold, m.Dialect)
		if err != nil {
			// A gold candidate that does not parse is excluded, not fatal.
			continue
		}
		switch {
		case goldNorm == predNorm:
			best = 1.0
		case best < 0.5 && predNorm != "" && goldNorm != "" &&
			(strings.Contains(goldNorm, predNorm) || strings.Contains(predNorm, goldNorm)):
			best = 0.5
		}
		if best == 1.0 {
			break
		}
	}

	out.Score = score(best)
	switch best {
	case 1.0:
		out.Reason = "equal(any candidate)"
	case 0.5:
		out.Reason = "partial(any candidate)"
	default:
		out.Reason = "different"
	}
	return out
}
