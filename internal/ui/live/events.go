package live

import "chateval/internal/eval"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventCaseStart signals one test case entering evaluation.
	EventCaseStart
	// EventCaseEnd delivers a finished test-case result.
	EventCaseEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	RunID   string
	CaseIDs []string
	CaseID  string
	Result  eval.EvaluationResult
}
