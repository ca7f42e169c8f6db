package eval

import (
	"context"
	"time"

	"chateval/internal/chatbot"
	"chateval/internal/metric"
	"chateval/internal/oracle"
	"chateval/internal/testcase"
)

// Options configures one evaluation pass.
type Options struct {
	// DefaultModel is the run-wide evaluation model, overridden per
	// metric by the declaration's own model.
	DefaultModel string
	// Concurrent fans all metric scores for a test case out at once;
	// sequential mode scores them one after another. Both wait for
	// every metric before returning.
	Concurrent bool
	// Registry resolves metric names; nil uses the standard registry.
	Registry *metric.Registry
}

func (opts Options) registry() *metric.Registry {
	if opts.Registry != nil {
		return opts.Registry
	}
	return metric.NewRegistry()
}

// Evaluate runs the linear pipeline for one test case: fetch the
// chatbot's reply, build the metric set, score every metric, and fold
// the verdicts into a result. Any step's failure short-circuits to a
// failed result without touching the remaining steps.
func Evaluate(ctx context.Context, tc testcase.TestCase, client chatbot.Client, scorer oracle.Oracle, opts Options) EvaluationResult {
	started := time.Now()
	result := EvaluationResult{ID: tc.ID, FilePath: tc.FilePath}

	input, history := splitExchange(tc)
	reply, err := client.Send(ctx, input, history)
	if err != nil {
		result.Err = err.Error()
		result.Duration = time.Since(started).Seconds()
		return result
	}
	result.Response = reply.Output
	result.RetrievalContext = reply.RetrievalContext

	metrics, err := opts.registry().Build(tc.Metrics, opts.DefaultModel)
	if err != nil {
		result.Err = err.Error()
		result.Duration = time.Since(started).Seconds()
		return result
	}

	inputs := oracle.Inputs{
		Input:            input,
		ActualOutput:     reply.Output,
		ExpectedOutput:   tc.ExpectedOutput,
		Context:          tc.Context,
		RetrievalContext: tc.RetrievalContext,
	}
	// Declared ground truth wins; fall back to what the endpoint
	// reported alongside the reply.
	if len(inputs.RetrievalContext) == 0 {
		inputs.RetrievalContext = reply.RetrievalContext
	}

	if opts.Concurrent {
		result.Metrics = scoreConcurrent(ctx, scorer, metrics, inputs)
	} else {
		result.Metrics = scoreSequential(ctx, scorer, metrics, inputs)
	}

	result.Pass = true
	for _, detail := range result.Metrics {
		if !detail.Pass {
			result.Pass = false
			break
		}
	}
	result.Duration = time.Since(started).Seconds()
	return result
}

// splitExchange returns the latest user input plus preceding history.
func splitExchange(tc testcase.TestCase) (string, []testcase.Message) {
	if !tc.Conversational() {
		return tc.Input, nil
	}
	last := len(tc.Messages) - 1
	return tc.Messages[last].Content, tc.Messages[:last]
}

func scoreSequential(ctx context.Context, scorer oracle.Oracle, metrics []metric.Metric, inputs oracle.Inputs) []MetricResult {
	details := make([]MetricResult, len(metrics))
	for i, m := range metrics {
		details[i] = scoreOne(ctx, scorer, m, inputs)
	}
	return details
}

type scoredMetric struct {
	index  int
	detail MetricResult
}

// scoreConcurrent issues every score at once and joins on all of them,
// preserving declaration order regardless of completion order.
func scoreConcurrent(ctx context.Context, scorer oracle.Oracle, metrics []metric.Metric, inputs oracle.Inputs) []MetricResult {
	details := make([]MetricResult, len(metrics))
	resultCh := make(chan scoredMetric, len(metrics))
	for i, m := range metrics {
		go func(index int, m metric.Metric) {
			resultCh <- scoredMetric{index: index, detail: scoreOne(ctx, scorer, m, inputs)}
		}(i, m)
	}
	for range metrics {
		scored := <-resultCh
		details[scored.index] = scored.detail
	}
	return details
}

// scoreOne fetches one verdict. Oracle failures fail the metric but
// never abort the test case's other metrics.
func scoreOne(ctx context.Context, scorer oracle.Oracle, m metric.Metric, inputs oracle.Inputs) MetricResult {
	detail := MetricResult{Name: m.Name, Threshold: m.Threshold}
	verdict, err := scorer.Score(ctx, m, inputs)
	if err != nil {
		detail.Err = err.Error()
		return detail
	}
	detail.Score = verdict.Score
	detail.Reason = verdict.Reason
	detail.Pass = m.Passes(verdict.Score)
	return detail
}
