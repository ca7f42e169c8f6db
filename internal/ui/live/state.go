package live

import "time"

// CaseStatus is the display status of one test case.
type CaseStatus int

const (
	CasePending CaseStatus = iota
	CaseRunning
	CasePassed
	CaseFailed
	CaseErrored
)

// CaseRow holds UI state for a single test case.
type CaseRow struct {
	Index         int
	ID            string
	Status        CaseStatus
	MetricsPassed int
	MetricsTotal  int
	Duration      float64
	Error         string
	StartedAt     time.Time
}

// StatusCounts aggregates rows by status bucket.
type StatusCounts struct {
	Pending int
	Running int
	Passed  int
	Failed  int
	Errored int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	StartedAt time.Time
	Rows      []CaseRow
	Counts    StatusCounts
	LastEvent string
	Finished  bool
}
