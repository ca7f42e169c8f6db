package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"chateval/internal/chatbot"
	"chateval/internal/eval"
	"chateval/internal/metric"
	"chateval/internal/oracle"
	"chateval/internal/testcase"
)

// Params configures one batch run.
type Params struct {
	// TestDir holds the test-case files; its absence is run-fatal.
	TestDir string
	// DefaultModel is the run-wide evaluation model.
	DefaultModel string
	// Concurrent toggles fan-out scoring within each test case.
	Concurrent bool
	// Registry resolves metric names; nil uses the standard registry.
	Registry *metric.Registry

	Verbose       bool
	VerboseWriter io.Writer
	// VerboseLogWriter receives an uncolored copy of the verbose
	// stream, typically a log file.
	VerboseLogWriter io.Writer
	NoColor          bool
	// Observer receives lifecycle events; nil means no observer.
	Observer Observer
}

// NewRunID returns a timestamped identifier with a random suffix.
func NewRunID(now time.Time) string {
	return now.UTC().Format("20060102T150405Z") + "-" + uuid.NewString()[:8]
}

// Run loads every test case in the directory and evaluates them one
// after another against the shared client. Per-case failures never
// abort the batch; only a missing directory does. The caller owns the
// client's lifecycle.
func Run(ctx context.Context, params Params, client chatbot.Client, scorer oracle.Oracle) (Results, error) {
	observer := params.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	registry := params.Registry
	if registry == nil {
		registry = metric.NewRegistry()
	}

	results := Results{
		RunID:     NewRunID(time.Now()),
		TestDir:   params.TestDir,
		StartedAt: time.Now().UTC(),
	}

	cases, skippedFiles, err := testcase.LoadDir(params.TestDir, testcase.LoadOptions{KnownMetric: registry.Has})
	if err != nil {
		return Results{}, fmt.Errorf("load test cases: %w", err)
	}
	for _, skipped := range skippedFiles {
		results.Skipped = append(results.Skipped, SkippedFile{Path: skipped.Path, Reason: skipped.Err.Error()})
		logVerbose(params.Verbose, params.VerboseWriter, params.VerboseLogWriter, params.NoColor, styleError,
			"Skipping %s: %v", skipped.Path, skipped.Err)
	}

	caseIDs := make([]string, 0, len(cases))
	for _, tc := range cases {
		caseIDs = append(caseIDs, tc.ID)
	}
	observer.OnRunStart(results.RunID, caseIDs)
	logVerbose(params.Verbose, params.VerboseWriter, params.VerboseLogWriter, params.NoColor, styleDefault,
		"Run %s: %d test cases from %s", results.RunID, len(cases), params.TestDir)

	opts := eval.Options{
		DefaultModel: params.DefaultModel,
		Concurrent:   params.Concurrent,
		Registry:     registry,
	}
	for i, tc := range cases {
		observer.OnCaseStart(tc.ID)
		logVerbose(params.Verbose, params.VerboseWriter, params.VerboseLogWriter, params.NoColor, styleCase,
			"Case %d/%d: %s", i+1, len(cases), tc.ID)
		result := eval.Evaluate(ctx, tc, client, scorer, opts)
		results.Cases = append(results.Cases, result)
		observer.OnCaseEnd(result)
		logCaseOutcome(params, result)
	}

	results.FinishedAt = time.Now().UTC()
	results.Summary = summarize(results.Cases)
	observer.OnRunEnd(results)
	return results, nil
}

func logCaseOutcome(params Params, result eval.EvaluationResult) {
	switch {
	case result.Errored():
		logVerbose(params.Verbose, params.VerboseWriter, params.VerboseLogWriter, params.NoColor, styleError,
			"Case %s: error (%s)", result.ID, result.Err)
	case result.Pass:
		logVerbose(params.Verbose, params.VerboseWriter, params.VerboseLogWriter, params.NoColor, stylePass,
			"Case %s: pass in %.2fs", result.ID, result.Duration)
	default:
		logVerbose(params.Verbose, params.VerboseWriter, params.VerboseLogWriter, params.NoColor, styleError,
			"Case %s: fail in %.2fs", result.ID, result.Duration)
	}
}
