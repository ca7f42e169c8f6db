package live

import (
	"time"

	"chateval/internal/eval"
)

// Reduce folds one event into the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventRunStart:
		state.RunID = event.RunID
		if state.StartedAt.IsZero() {
			state.StartedAt = time.Now()
		}
		state.Rows = make([]CaseRow, 0, len(event.CaseIDs))
		for i, id := range event.CaseIDs {
			state.Rows = append(state.Rows, CaseRow{Index: i + 1, ID: id, Status: CasePending})
		}
	case EventCaseStart:
		if row := findRow(state.Rows, event.CaseID); row != nil {
			row.Status = CaseRunning
			row.StartedAt = time.Now()
		}
		state.LastEvent = "Running " + event.CaseID
	case EventCaseEnd:
		if row := findRow(state.Rows, event.Result.ID); row != nil {
			applyResult(row, event.Result)
		}
		state.LastEvent = outcomeEvent(event.Result)
	case EventRunEnd:
		state.Finished = true
		state.LastEvent = "Run finished"
	}
	state.Counts = countStatuses(state.Rows)
	return state
}

func findRow(rows []CaseRow, id string) *CaseRow {
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i]
		}
	}
	return nil
}

func applyResult(row *CaseRow, result eval.EvaluationResult) {
	row.Duration = result.Duration
	row.MetricsTotal = len(result.Metrics)
	row.MetricsPassed = 0
	for _, detail := range result.Metrics {
		if detail.Pass {
			row.MetricsPassed++
		}
	}
	switch {
	case result.Errored():
		row.Status = CaseErrored
		row.Error = result.Err
	case result.Pass:
		row.Status = CasePassed
	default:
		row.Status = CaseFailed
	}
}

func outcomeEvent(result eval.EvaluationResult) string {
	switch {
	case result.Errored():
		return result.ID + " errored: " + result.Err
	case result.Pass:
		return result.ID + " passed"
	default:
		return result.ID + " failed"
	}
}

func countStatuses(rows []CaseRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case CasePending:
			counts.Pending++
		case CaseRunning:
			counts.Running++
		case CasePassed:
			counts.Passed++
		case CaseFailed:
			counts.Failed++
		case CaseErrored:
			counts.Errored++
		}
	}
	return counts
}
