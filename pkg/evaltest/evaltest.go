// Package evaltest runs declarative chatbot evaluations inside the
// standard go test runner. Each test case becomes a subtest that fails
// when any of its metrics falls short.
package evaltest

import (
	"context"
	"testing"

	"chateval/internal/chatbot"
	"chateval/internal/eval"
	"chateval/internal/metric"
	"chateval/internal/oracle"
	"chateval/internal/testcase"
)

// Config wires the evaluation dependencies for a test run.
type Config struct {
	// Client delivers exchanges to the chatbot under test. Required.
	Client chatbot.Client
	// Scorer judges responses. Required.
	Scorer oracle.Oracle
	// DefaultModel applies to metrics without their own model.
	DefaultModel string
	// Concurrent fans out metric scoring within each case.
	Concurrent bool
	// Registry resolves metric names; nil uses the standard registry.
	Registry *metric.Registry
}

func (c Config) registry() *metric.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return metric.NewRegistry()
}

func (c Config) options() eval.Options {
	return eval.Options{
		DefaultModel: c.DefaultModel,
		Concurrent:   c.Concurrent,
		Registry:     c.registry(),
	}
}

// RunFile evaluates one test-case file as a subtest.
func RunFile(t *testing.T, path string, cfg Config) {
	t.Helper()
	tc, err := testcase.LoadFile(path, testcase.LoadOptions{KnownMetric: cfg.registry().Has})
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	runCase(t, tc, cfg)
}

// RunDir evaluates every test-case file in a directory, one subtest
// per case. Files that fail to load are reported as test failures.
func RunDir(t *testing.T, dir string, cfg Config) {
	t.Helper()
	cases, skipped, err := testcase.LoadDir(dir, testcase.LoadOptions{KnownMetric: cfg.registry().Has})
	if err != nil {
		t.Fatalf("load test cases: %v", err)
	}
	for _, skip := range skipped {
		t.Errorf("invalid test-case file %s: %v", skip.Path, skip.Err)
	}
	for _, tc := range cases {
		runCase(t, tc, cfg)
	}
}

func runCase(t *testing.T, tc testcase.TestCase, cfg Config) {
	t.Helper()
	t.Run(tc.ID, func(t *testing.T) {
		result := eval.Evaluate(context.Background(), tc, cfg.Client, cfg.Scorer, cfg.options())
		if result.Errored() {
			t.Fatalf("evaluation error: %s", result.Err)
		}
		for _, detail := range result.Metrics {
			if detail.Err != "" {
				t.Errorf("%s: %s", detail.Name, detail.Err)
				continue
			}
			if !detail.Pass {
				t.Errorf("%s: score %.2f did not meet threshold %.2f (%s)",
					detail.Name, detail.Score, detail.Threshold, detail.Reason)
			}
		}
	})
}
