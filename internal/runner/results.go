package runner

import (
	"time"

	"chateval/internal/eval"
)

// SkippedFile records a test-case file rejected during loading.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Results captures a whole evaluation run.
type Results struct {
	RunID      string                  `json:"run_id"`
	TestDir    string                  `json:"test_dir"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	Cases      []eval.EvaluationResult `json:"cases"`
	Skipped    []SkippedFile           `json:"skipped,omitempty"`
	Summary    Summary                 `json:"summary"`
}

// Failed reports whether any case failed or errored, or any file was
// skipped.
func (r Results) Failed() bool {
	return r.Summary.CasesFailed > 0 || r.Summary.CasesErrored > 0 || len(r.Skipped) > 0
}

// MetricSummary aggregates one metric name across the run.
type MetricSummary struct {
	Name      string  `json:"name"`
	Total     int     `json:"total"`
	Passed    int     `json:"passed"`
	MeanScore float64 `json:"mean_score"`
}

// Summary aggregates the run's outcomes.
type Summary struct {
	CasesTotal   int             `json:"cases_total"`
	CasesPassed  int             `json:"cases_passed"`
	CasesFailed  int             `json:"cases_failed"`
	CasesErrored int             `json:"cases_errored"`
	PassRate     float64         `json:"pass_rate"`
	Metrics      []MetricSummary `json:"metrics"`
}

// summarize aggregates per-case results into a run summary.
func summarize(cases []eval.EvaluationResult) Summary {
	summary := Summary{CasesTotal: len(cases)}
	type accumulator struct {
		total  int
		passed int
		sum    float64
	}
	perMetric := map[string]*accumulator{}
	var order []string
	for _, result := range cases {
		switch {
		case result.Errored():
			summary.CasesErrored++
		case result.Pass:
			summary.CasesPassed++
		default:
			summary.CasesFailed++
		}
		for _, detail := range result.Metrics {
			acc, ok := perMetric[detail.Name]
			if !ok {
				acc = &accumulator{}
				perMetric[detail.Name] = acc
				order = append(order, detail.Name)
			}
			acc.total++
			acc.sum += detail.Score
			if detail.Pass {
				acc.passed++
			}
		}
	}
	if summary.CasesTotal > 0 {
		summary.PassRate = float64(summary.CasesPassed) / float64(summary.CasesTotal)
	}
	for _, name := range order {
		acc := perMetric[name]
		summary.Metrics = append(summary.Metrics, MetricSummary{
			Name:      name,
			Total:     acc.total,
			Passed:    acc.passed,
			MeanScore: acc.sum / float64(acc.total),
		})
	}
	return summary
}
