package eval

// MetricResult is one scoring criterion's outcome for a test case.
type MetricResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Pass      bool    `json:"pass"`
	Reason    string  `json:"reason,omitempty"`
	Err       string  `json:"error,omitempty"`
}

// EvaluationResult is the structured verdict for one test case. It is
// returned by value and never mutated after construction.
type EvaluationResult struct {
	ID       string  `json:"id"`
	Pass     bool    `json:"pass"`
	Duration float64 `json:"duration_seconds"`
	Response string  `json:"chatbot_response,omitempty"`
	// RetrievalContext is what the endpoint reported alongside the
	// reply, kept for reporting.
	RetrievalContext []string       `json:"retrieval_context_extracted,omitempty"`
	Metrics          []MetricResult `json:"metrics"`
	Err              string         `json:"error,omitempty"`
	FilePath         string         `json:"file_path,omitempty"`
}

// Errored reports whether the evaluation stopped before scoring.
func (r EvaluationResult) Errored() bool {
	return r.Err != ""
}
