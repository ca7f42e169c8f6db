package evaltest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"chateval/internal/chatbot"
	"chateval/internal/metric"
	"chateval/internal/oracle"
	"chateval/internal/testcase"
)

func scriptedConfig(score float64) Config {
	return Config{
		Client: chatbot.NewLocalClient(chatbot.ResponderFunc(
			func(ctx context.Context, input string, history []testcase.Message) (chatbot.Reply, error) {
				return chatbot.Reply{Output: "Paris"}, nil
			})),
		Scorer: &oracle.Static{Default: &oracle.Verdict{Score: score, Reason: "scripted"}},
	}
}

// TestRunFilePasses verifies a passing case produces a green subtest.
func TestRunFilePasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t1.json")
	payload := `{"id": "t1", "input": "What is the capital of France?",
	  "expected_output": "Paris",
	  "metrics": [{"name": "AnswerRelevancy", "threshold": 0.5}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	RunFile(t, path, scriptedConfig(0.9))
}

// TestRunDirPasses verifies every case in a directory becomes a subtest.
func TestRunDirPasses(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		payload := `{"id": "` + name + `", "input": "Hi", "metrics": [{"name": "AnswerRelevancy"}]}`
		if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(payload), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	RunDir(t, dir, scriptedConfig(0.8))
}

// TestConfigDefaults verifies the fallback registry and options.
func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if cfg.registry() == nil {
		t.Fatalf("expected a default registry")
	}
	if !cfg.registry().Has("AnswerRelevancy") {
		t.Fatalf("expected standard metrics registered")
	}

	custom := metric.NewRegistry().WithBuilders(map[string]metric.Builder{
		"Custom": func(spec testcase.MetricSpec, threshold float64, model string) (metric.Metric, error) {
			return metric.Metric{Name: "Custom", Threshold: threshold}, nil
		},
	})
	cfg.Registry = custom
	if !cfg.registry().Has("Custom") {
		t.Fatalf("expected custom registry to be used")
	}
	if cfg.options().Registry != custom {
		t.Fatalf("expected options to carry the custom registry")
	}
}
