package metric

import "fmt"

// DefaultThreshold applies when a metric declaration carries none.
const DefaultThreshold = 0.5

// Direction states which side of the threshold counts as passing.
type Direction int

const (
	// HigherIsBetter passes when score >= threshold.
	HigherIsBetter Direction = iota
	// LowerIsBetter passes when score <= threshold, used for metrics
	// that measure a defect (bias, toxicity, hallucination).
	LowerIsBetter
)

// String returns the direction's display form.
func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower-is-better"
	}
	return "higher-is-better"
}

// Metric is one ready-to-score criterion, fully resolved from its file
// declaration plus run defaults.
type Metric struct {
	Name      string
	Threshold float64
	Model     string
	Direction Direction

	// Instructions tell the scoring oracle what dimension to judge.
	Instructions string
	// Criteria carries free-form guidance for criteria-driven metrics.
	Criteria string

	// NeedsRetrieval and NeedsExpected mark what parts of the input
	// bundle the metric reads, so runs can warn on missing data.
	NeedsRetrieval bool
	NeedsExpected  bool
}

// Passes applies the metric's threshold in its declared direction.
func (m Metric) Passes(score float64) bool {
	if m.Direction == LowerIsBetter {
		return score <= m.Threshold
	}
	return score >= m.Threshold
}

// ConfigurationError reports a metric declaration that could not be
// turned into a scorer. It fails the whole test case, since its metric
// set could not be constructed.
type ConfigurationError struct {
	Metric string
	Err    error
}

// Error returns a readable message for the configuration failure.
func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("metric %s: %v", err.Metric, err.Err)
}

// Unwrap exposes the underlying cause.
func (err *ConfigurationError) Unwrap() error {
	return err.Err
}
