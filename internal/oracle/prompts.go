package oracle

import (
	"fmt"
	"strings"

	"chateval/internal/metric"
)

const judgeSystemPrompt = `You are an expert evaluator of conversational AI responses. ` +
	`You judge one quality dimension at a time and reply with a JSON object of the form ` +
	`{"score": <number between 0.0 and 1.0>, "reason": "<one or two sentences>"}. ` +
	`Reply with the JSON object only, no surrounding prose.`

// buildJudgePrompt renders the metric's instructions plus the input
// bundle into a single evaluation prompt.
func buildJudgePrompt(m metric.Metric, in Inputs) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "**Dimension under evaluation: %s**\n%s\n", m.Name, m.Instructions)
	if m.Criteria != "" {
		fmt.Fprintf(&builder, "\n**Evaluation criteria:**\n%s\n", m.Criteria)
	}
	fmt.Fprintf(&builder, "\n**User input:**\n%s\n", in.Input)
	fmt.Fprintf(&builder, "\n**Actual output:**\n%s\n", in.ActualOutput)
	if in.ExpectedOutput != "" {
		fmt.Fprintf(&builder, "\n**Expected output:**\n%s\n", in.ExpectedOutput)
	}
	writeList(&builder, "Context", in.Context)
	writeList(&builder, "Retrieval context", in.RetrievalContext)
	builder.WriteString("\nReturn the JSON verdict now.")
	return builder.String()
}

func writeList(builder *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(builder, "\n**%s:**\n", label)
	for i, item := range items {
		fmt.Fprintf(builder, "%d. %s\n", i+1, item)
	}
}
