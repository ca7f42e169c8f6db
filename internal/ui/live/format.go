package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatStatus renders a row's status label, colored when enabled.
func formatStatus(row CaseRow, noColor bool) string {
	label := statusLabel(row.Status)
	if noColor {
		return label
	}
	return statusStyle(row.Status).Render(label)
}

func statusLabel(status CaseStatus) string {
	switch status {
	case CaseRunning:
		return "running"
	case CasePassed:
		return "pass"
	case CaseFailed:
		return "fail"
	case CaseErrored:
		return "error"
	default:
		return "pending"
	}
}

// statusStyle selects a style for a given status.
func statusStyle(status CaseStatus) lipgloss.Style {
	color := lipgloss.Color("246")
	switch status {
	case CaseRunning:
		color = lipgloss.Color("33")
	case CasePassed:
		color = lipgloss.Color("42")
	case CaseFailed:
		color = lipgloss.Color("220")
	case CaseErrored:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color)
}

// formatMetrics renders the per-row metric tally.
func formatMetrics(row CaseRow) string {
	if row.MetricsTotal == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", row.MetricsPassed, row.MetricsTotal)
}

// formatRowDuration renders elapsed or final duration for a row.
func formatRowDuration(row CaseRow, now time.Time) string {
	switch {
	case row.Duration > 0:
		return fmt.Sprintf("%.2fs", row.Duration)
	case row.Status == CaseRunning && !row.StartedAt.IsZero():
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	default:
		return ""
	}
}

func fmtInt(value int) string {
	return fmt.Sprintf("%d", value)
}
