// Package config resolves harness settings from the process
// environment. Flags layer on top of it in the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default values applied when the environment leaves a knob unset.
const (
	DefaultTestDir = "./test_data"
	DefaultTimeout = 30 * time.Second
)

// Config carries every externally supplied setting.
type Config struct {
	// Endpoint is the chatbot HTTP endpoint; required for network runs.
	Endpoint string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// TestDir holds the declarative test-case files.
	TestDir string
	// DefaultModel is the run-wide evaluation model; per-metric models
	// override it.
	DefaultModel string
	// Concurrent fans out metric scoring within each test case.
	Concurrent bool
	// Timeout bounds each chatbot request.
	Timeout time.Duration

	// Judge settings for the scoring backend.
	JudgeBaseURL string
	JudgeAPIKey  string
	JudgeModel   string
}

// FromEnv builds a Config from the process environment.
func FromEnv() Config {
	cfg := Config{
		Endpoint:     strings.TrimSpace(os.Getenv("CHATBOT_API_ENDPOINT")),
		APIKey:       strings.TrimSpace(os.Getenv("CHATBOT_API_KEY")),
		TestDir:      strings.TrimSpace(os.Getenv("TEST_DATA_DIR")),
		DefaultModel: strings.TrimSpace(os.Getenv("EVAL_MODEL")),
		Concurrent:   truthy(os.Getenv("EVAL_RUN_ASYNC"), true),
		Timeout:      DefaultTimeout,
		JudgeBaseURL: strings.TrimSpace(os.Getenv("JUDGE_API_BASE")),
		JudgeAPIKey:  strings.TrimSpace(os.Getenv("JUDGE_API_KEY")),
		JudgeModel:   strings.TrimSpace(os.Getenv("JUDGE_MODEL")),
	}
	if cfg.TestDir == "" {
		cfg.TestDir = DefaultTestDir
	}
	if raw := strings.TrimSpace(os.Getenv("CHATBOT_TIMEOUT_SECONDS")); raw != "" {
		if seconds, err := strconv.ParseFloat(raw, 64); err == nil && seconds > 0 {
			cfg.Timeout = time.Duration(seconds * float64(time.Second))
		}
	}
	return cfg
}

// Validate checks the settings a network run cannot do without.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("chatbot endpoint is required (set CHATBOT_API_ENDPOINT or pass --endpoint)")
	}
	return nil
}

// truthy interprets the usual boolean spellings, falling back to the
// default for unset or unrecognized values.
func truthy(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return fallback
	case "true", "1", "t", "y", "yes":
		return true
	default:
		return false
	}
}
