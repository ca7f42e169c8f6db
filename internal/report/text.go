package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chateval/internal/eval"
	"chateval/internal/runner"
)

// formatPassRate returns a percentage string for report output.
func formatPassRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate*100)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func outcomeLabel(result eval.EvaluationResult, noColor bool) string {
	switch {
	case result.Errored():
		return stylize("ERROR", noColor, lipgloss.Color("196"))
	case result.Pass:
		return stylize("PASS", noColor, lipgloss.Color("42"))
	default:
		return stylize("FAIL", noColor, lipgloss.Color("196"))
	}
}

// RenderText renders the run as a plain-text summary.
func RenderText(results runner.Results, noColor bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", stylize("Run "+results.RunID, noColor, lipgloss.Color("33")))
	fmt.Fprintf(&b, "Test dir: %s\n\n", results.TestDir)

	for _, result := range results.Cases {
		fmt.Fprintf(&b, "%s  %s (%.2fs)\n", outcomeLabel(result, noColor), result.ID, result.Duration)
		if result.Errored() {
			fmt.Fprintf(&b, "       %s\n", result.Err)
			continue
		}
		for _, detail := range result.Metrics {
			mark := stylize("ok", noColor, lipgloss.Color("42"))
			if !detail.Pass {
				mark = stylize("failed", noColor, lipgloss.Color("196"))
			}
			fmt.Fprintf(&b, "       %s: %.2f (threshold %.2f) %s\n",
				detail.Name, detail.Score, detail.Threshold, mark)
			if !detail.Pass && detail.Reason != "" {
				fmt.Fprintf(&b, "         %s\n", detail.Reason)
			}
		}
	}
	for _, skipped := range results.Skipped {
		fmt.Fprintf(&b, "%s  %s: %s\n",
			stylize("SKIP", noColor, lipgloss.Color("220")), skipped.Path, skipped.Reason)
	}

	summary := results.Summary
	fmt.Fprintf(&b, "\n%d cases: %d passed, %d failed, %d errored (%s%% pass rate)\n",
		summary.CasesTotal, summary.CasesPassed, summary.CasesFailed, summary.CasesErrored,
		formatPassRate(summary.PassRate))
	for _, ms := range summary.Metrics {
		fmt.Fprintf(&b, "  %s: %d/%d passed, mean score %.2f\n",
			ms.Name, ms.Passed, ms.Total, ms.MeanScore)
	}
	return b.String()
}

// WriteText writes the plain-text summary to the writer.
func WriteText(w io.Writer, results runner.Results, noColor bool) error {
	_, err := io.WriteString(w, RenderText(results, noColor))
	return err
}
