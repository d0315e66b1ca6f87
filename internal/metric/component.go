package metric

import (
	"context"
	"fmt"

	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
)

// DefaultWeights returns the default per-kind weights for component match.
func DefaultWeights() map[sqlnorm.Kind]float64 {
	return map[sqlnorm.Kind]float64{
		sqlnorm.KindTables:     0.20,
		sqlnorm.KindColumns:    0.20,
		sqlnorm.KindAggregates: 0.15,
		sqlnorm.KindJoins:      0.20,
		sqlnorm.KindPredicates: 0.15,
		sqlnorm.KindGroupBy:    0.05,
		sqlnorm.KindOrderBy:    0.05,
	}
}

// ComponentMatch computes a weighted Jaccard similarity between the
// structural components of the prediction and each gold candidate, keeping
// the best candidate's score and per-kind breakdown.
type ComponentMatch struct {
	Dialect string
	// Weights overrides DefaultWeights when non-nil. The score divides by
	// the sum of the weights actually supplied.
	Weights map[sqlnorm.Kind]float64
}

func (m *ComponentMatch) Name() string { return NameComponentMatch }

func (m *ComponentMatch) Measure(_ context.Context, predSQL string, golds []string) Outcome {
	out := Outcome{Name: NameComponentMatch, Threshold: thresholdComponents}
	weights := m.Weights
	if weights == nil {
		weights = DefaultWeights()
	}

	pred, err := sqlnorm.Extract(predSQL, m.Dialect)
	if err != nil {
		out.Score, out.Reason = score(0), reasonFor(err)
		return out
	}

	best := 0.0
	var bestDetail map[string]float64
	for _, goldSQL := range golds {
		gold, err := sqlnorm.Extract(goldSQL, m.Dialect)
		if err != nil {
			// Only this candidate drops out of the max.
			continue
		}
		total, detail := weightedJaccard(pred, gold, weights)
		if total > best || bestDetail == nil {
			best, bestDetail = total, detail
		}
	}

	out.Score = score(best)
	out.Reason = fmt.Sprintf("weighted jaccard; best=%.3f", best)
	out.Details = bestDetail
	return out
}

func weightedJaccard(pred, gold sqlnorm.ComponentSet, weights map[sqlnorm.Kind]float64) (float64, map[string]float64) {
	detail := make(map[string]float64, len(weights))
	totalWeight := 0.0
	acc := 0.0
	for kind, w := range weights {
		j := Jaccard(pred.Get(kind), gold.Get(kind))
		detail[string(kind)] = j
		totalWeight += w
		acc += j * w
	}
	if totalWeight == 0 {
		return 0, detail
	}
	return acc / totalWeight, detail
}

// Jaccard is |A∩B| / |A∪B|, defined as 1.0 for two empty sets (vacuous
// agreement) and 0.0 when exactly one side is empty.
func Jaccard(a, b sqlnorm.TokenSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for tok := range a {
		if b.Has(tok) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
