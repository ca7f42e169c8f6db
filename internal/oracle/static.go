package oracle

import (
	"context"
	"fmt"

	"chateval/internal/metric"
)

// Static is a scripted oracle returning fixed verdicts per metric
// name. It backs offline runs and tests of the harness itself.
type Static struct {
	// Verdicts maps metric name to its fixed verdict.
	Verdicts map[string]Verdict
	// Default applies to metrics with no scripted verdict. When nil,
	// unscripted metrics are an error.
	Default *Verdict
	// Fail, when set, makes every scoring call fail with this error.
	Fail error
}

// Score returns the scripted verdict for the metric.
func (s *Static) Score(_ context.Context, m metric.Metric, _ Inputs) (Verdict, error) {
	if s.Fail != nil {
		return Verdict{}, &OracleError{Metric: m.Name, Err: s.Fail}
	}
	if verdict, ok := s.Verdicts[m.Name]; ok {
		return verdict, nil
	}
	if s.Default != nil {
		return *s.Default, nil
	}
	return Verdict{}, &OracleError{Metric: m.Name, Err: fmt.Errorf("no scripted verdict")}
}
