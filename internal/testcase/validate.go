package testcase

import (
	"fmt"
	"strings"
)

// Issue captures a single validation problem in a test-case file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues for a file.
type ValidationError struct {
	Path   string
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("test case validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	path   string
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Path: collector.path, Issues: collector.issues}
}

// Validate checks the semantic invariants of a test case. When
// knownMetric is non-nil, every metric name must be recognized by it.
func Validate(tc TestCase, knownMetric func(name string) bool) error {
	collector := &issueCollector{path: tc.FilePath}

	if tc.ID == "" {
		collector.add("id", "is required")
	}

	hasInput := strings.TrimSpace(tc.Input) != ""
	hasMessages := len(tc.Messages) > 0
	switch {
	case !hasInput && !hasMessages:
		collector.add("input", "one of input or messages is required")
	case hasInput && hasMessages:
		collector.add("input", "input and messages are mutually exclusive")
	}

	if hasMessages {
		for i, message := range tc.Messages {
			prefix := fmt.Sprintf("messages[%d]", i)
			if message.Role == "" {
				collector.add(prefix+".role", "is required")
			}
			if strings.TrimSpace(message.Content) == "" {
				collector.add(prefix+".content", "is required")
			}
		}
		if last := tc.Messages[len(tc.Messages)-1]; last.Role != RoleUser {
			collector.add(fmt.Sprintf("messages[%d].role", len(tc.Messages)-1),
				fmt.Sprintf("last message must have role %q, got %q", RoleUser, last.Role))
		}
	}

	if len(tc.Metrics) == 0 {
		collector.add("metrics", "must include at least one entry")
	}
	for i, spec := range tc.Metrics {
		prefix := fmt.Sprintf("metrics[%d]", i)
		if spec.Name == "" {
			collector.add(prefix+".name", "is required")
			continue
		}
		if knownMetric != nil && !knownMetric(spec.Name) {
			collector.add(prefix+".name", fmt.Sprintf("unknown metric %q", spec.Name))
		}
		if spec.Threshold != nil && (*spec.Threshold < 0 || *spec.Threshold > 1) {
			collector.add(prefix+".threshold", fmt.Sprintf("must be within [0,1], got %v", *spec.Threshold))
		}
	}

	return collector.result()
}
