// Package eval orchestrates one pass over all test cases, running every
// metric and folding the outcomes into per-case verdicts.
package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/metric"
	"github.com/kyungjunleeme/Text2SQL/internal/result"
	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
	"github.com/kyungjunleeme/Text2SQL/internal/util"
)

// CaseReport is the unit of output for one test case.
type CaseReport struct {
	ID        string           `json:"id"`
	Question  string           `json:"question"`
	GoldSQL   GoldSQL          `json:"gold_sql"`
	PredSQL   string           `json:"pred_sql"`
	Metrics   []metric.Outcome `json:"metrics"`
	PassedAll bool             `json:"passed_all"`
}

// Summary aggregates the pass counts over a run.
type Summary struct {
	PassedAll int `json:"passed_all"`
	Total     int `json:"total"`
}

// Report is the sole artifact downstream consumers read.
type Report struct {
	Summary Summary      `json:"summary"`
	Results []CaseReport `json:"results"`
}

// Options configure an evaluation run.
type Options struct {
	// Dialect is forwarded to the extractor and normalizer.
	Dialect string
	Compare result.CompareOptions
	// Weights overrides the component match defaults when non-nil.
	Weights map[sqlnorm.Kind]float64
	// RequireAllMetrics makes every metric gate the verdict. The default
	// policy gates only on executability and execution accuracy: execution
	// equivalence is the only ground truth available, while syntactic
	// similarity stays advisory.
	RequireAllMetrics bool
}

// Evaluator drives the metric set over test cases. It holds exactly one
// backend session reused across all cases; run cases concurrently only with
// one Evaluator (and backend) per worker.
type Evaluator struct {
	backend backend.Backend
	opts    Options
}

// New creates an evaluator over one backend session.
func New(b backend.Backend, opts Options) *Evaluator {
	return &Evaluator{backend: b, opts: opts}
}

// Run scores every test case sequentially and assembles the report. A
// failure while scoring one case yields a synthetic zero report for that
// case and never prevents the remaining cases from being scored.
func (e *Evaluator) Run(ctx context.Context, cases []TestCase, preds map[string]string) *Report {
	report := &Report{Results: make([]CaseReport, 0, len(cases))}
	for _, tc := range cases {
		cr := e.evaluateCase(ctx, tc, preds[tc.ID])
		if cr.PassedAll {
			report.Summary.PassedAll++
		}
		report.Results = append(report.Results, cr)
	}
	report.Summary.Total = len(report.Results)
	return report
}

func (e *Evaluator) metrics() []metric.Metric {
	return []metric.Metric{
		&metric.Executable{Backend: e.backend},
		&metric.ExecutionAccuracy{Backend: e.backend, Opts: e.opts.Compare},
		&metric.SemanticMatch{Dialect: e.opts.Dialect},
		&metric.ComponentMatch{Dialect: e.opts.Dialect, Weights: e.opts.Weights},
	}
}

func (e *Evaluator) evaluateCase(ctx context.Context, tc TestCase, predSQL string) (cr CaseReport) {
	predSQL = strings.TrimSpace(predSQL)
	cr = CaseReport{ID: tc.ID, Question: tc.Question, GoldSQL: tc.GoldSQL, PredSQL: predSQL}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		util.Errorf("case %s: recovered: %v", tc.ID, r)
		cr.Metrics = syntheticOutcomes(fmt.Sprintf("internal error: %v", r))
		cr.PassedAll = false
	}()

	passed := make(map[string]bool, 4)
	for _, m := range e.metrics() {
		out := m.Measure(ctx, predSQL, tc.GoldSQL)
		passed[out.Name] = out.Passed()
		cr.Metrics = append(cr.Metrics, out)
	}

	cr.PassedAll = passed[metric.NameExecutable] && passed[metric.NameExecutionAcc]
	if e.opts.RequireAllMetrics {
		cr.PassedAll = cr.PassedAll && passed[metric.NameSemanticMatch] && passed[metric.NameComponentMatch]
	}
	return cr
}

// syntheticOutcomes fills a case report when evaluation itself blew up, so
// the case still appears in the output as failed rather than vanishing.
func syntheticOutcomes(reason string) []metric.Outcome {
	names := []string{
		metric.NameExecutable,
		metric.NameExecutionAcc,
		metric.NameSemanticMatch,
		metric.NameComponentMatch,
	}
	out := make([]metric.Outcome, 0, len(names))
	for _, name := range names {
		out = append(out, metric.ZeroOutcome(name, reason))
	}
	return out
}
