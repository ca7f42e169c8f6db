package runner

import "chateval/internal/eval"

// Observer receives run lifecycle events for UI or logging.
type Observer interface {
	// OnRunStart signals the start of a run over the loaded cases.
	OnRunStart(runID string, caseIDs []string)
	// OnCaseStart signals that a test case began evaluating.
	OnCaseStart(id string)
	// OnCaseEnd delivers a test case's verdict.
	OnCaseEnd(result eval.EvaluationResult)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnRunStart(string, []string)     {}
func (NopObserver) OnCaseStart(string)              {}
func (NopObserver) OnCaseEnd(eval.EvaluationResult) {}
func (NopObserver) OnRunEnd(Results)                {}
