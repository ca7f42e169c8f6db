package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

type rawVerdict struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// parseVerdict decodes a judge reply. Models occasionally wrap JSON in
// a markdown fence or surrounding prose, so both are tolerated.
func parseVerdict(reply string) (Verdict, error) {
	text := stripFence(strings.TrimSpace(reply))
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Verdict{}, fmt.Errorf("no JSON verdict in judge reply: %q", truncate(reply, 200))
	}
	var raw rawVerdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return Verdict{}, fmt.Errorf("decode judge verdict: %w", err)
	}
	return Verdict{Score: clamp(raw.Score), Reason: strings.TrimSpace(raw.Reason)}, nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if end := strings.LastIndex(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
