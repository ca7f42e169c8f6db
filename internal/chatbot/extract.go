package chatbot

import (
	"encoding/json"
	"fmt"
)

// replyKeys are probed in order for the reply text. The exact field
// name is an endpoint configuration detail, so the common ones are all
// accepted.
var replyKeys = []string{"response", "answer", "text", "output", "completion", "content"}

// contextKeys are probed in order for retrieval context lists.
var contextKeys = []string{"retrieved_context", "context", "sources", "documents"}

// extractReply pulls the reply text and optional retrieval context out
// of a response body. Plain string bodies are accepted as-is.
func extractReply(body []byte) (Reply, error) {
	var document any
	if err := json.Unmarshal(body, &document); err != nil {
		return Reply{}, fmt.Errorf("decode response body: %w", err)
	}

	switch value := document.(type) {
	case string:
		return Reply{Output: value}, nil
	case map[string]any:
		output, ok := extractOutput(value)
		if !ok {
			return Reply{}, fmt.Errorf("response body has no recognizable reply field")
		}
		return Reply{Output: output, RetrievalContext: extractContext(value)}, nil
	default:
		return Reply{}, fmt.Errorf("unexpected response body of type %T", document)
	}
}

func extractOutput(document map[string]any) (string, bool) {
	for _, key := range replyKeys {
		if text, ok := document[key].(string); ok {
			return text, true
		}
	}
	// OpenAI-style nesting: choices[0].message.content or choices[0].text.
	choices, ok := document["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	if message, ok := choice["message"].(map[string]any); ok {
		if content, ok := message["content"].(string); ok {
			return content, true
		}
	}
	if text, ok := choice["text"].(string); ok {
		return text, true
	}
	return "", false
}

func extractContext(document map[string]any) []string {
	for _, key := range contextKeys {
		items, ok := document[key].([]any)
		if !ok {
			continue
		}
		texts := make([]string, 0, len(items))
		for _, item := range items {
			if text, ok := item.(string); ok {
				texts = append(texts, text)
			}
		}
		if len(texts) > 0 {
			return texts
		}
	}
	return nil
}
