package oracle

import (
	"context"
	"fmt"

	"chateval/internal/metric"
)

// Inputs is the bundle handed to the oracle for one metric: the
// chatbot's reply plus the test case's declared expectations.
type Inputs struct {
	Input            string
	ActualOutput     string
	ExpectedOutput   string
	Context          []string
	RetrievalContext []string
}

// Verdict is one metric's score with the oracle's explanation.
type Verdict struct {
	Score  float64
	Reason string
}

// Oracle computes a metric's numeric score for an input bundle. The
// harness never inspects how; scoring is fully delegated.
type Oracle interface {
	Score(ctx context.Context, m metric.Metric, in Inputs) (Verdict, error)
}

// OracleError reports a scoring failure inside the oracle. It fails
// the affected metric, surfaced with the oracle's message.
type OracleError struct {
	Metric string
	Err    error
}

// Error returns a readable message for the scoring failure.
func (err *OracleError) Error() string {
	return fmt.Sprintf("score %s: %v", err.Metric, err.Err)
}

// Unwrap exposes the underlying failure.
func (err *OracleError) Unwrap() error {
	return err.Err
}
