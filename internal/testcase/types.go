package testcase

// RoleUser is the role the final message of a conversation must carry.
const RoleUser = "user"

// Message is a single role-tagged entry in a conversational test case.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// MetricSpec declares one scoring criterion for a test case. Keys other
// than name, threshold, and model are collected into Params and handed
// to the metric builder untouched.
type MetricSpec struct {
	Name      string
	Threshold *float64
	Model     string
	Params    map[string]any
}

// TestCase is one declarative evaluation unit loaded from a file.
// Exactly one of Input and Messages is set; when Messages is set its
// last entry has role "user".
type TestCase struct {
	ID               string       `json:"id" yaml:"id"`
	Input            string       `json:"input,omitempty" yaml:"input,omitempty"`
	Messages         []Message    `json:"messages,omitempty" yaml:"messages,omitempty"`
	ExpectedOutput   string       `json:"expected_output,omitempty" yaml:"expected_output,omitempty"`
	Context          []string     `json:"context,omitempty" yaml:"context,omitempty"`
	RetrievalContext []string     `json:"retrieval_context,omitempty" yaml:"retrieval_context,omitempty"`
	Metrics          []MetricSpec `json:"metrics" yaml:"metrics"`

	// FilePath records the source file for reporting. Empty for test
	// cases constructed in code.
	FilePath string `json:"-" yaml:"-"`
}

// Conversational reports whether the test case carries a message
// history rather than a single input.
func (tc TestCase) Conversational() bool {
	return len(tc.Messages) > 0
}

// Skipped records a file that could not be loaded during a directory
// scan, together with the reason it was rejected.
type Skipped struct {
	Path string
	Err  error
}
