package config

import (
	"testing"
	"time"
)

// TestFromEnvDefaults verifies fallbacks with an empty environment.
func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"CHATBOT_API_ENDPOINT", "CHATBOT_API_KEY", "TEST_DATA_DIR",
		"EVAL_MODEL", "EVAL_RUN_ASYNC", "CHATBOT_TIMEOUT_SECONDS",
		"JUDGE_API_BASE", "JUDGE_API_KEY", "JUDGE_MODEL",
	} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.TestDir != DefaultTestDir {
		t.Fatalf("unexpected test dir %q", cfg.TestDir)
	}
	if !cfg.Concurrent {
		t.Fatalf("expected concurrent scoring by default")
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("unexpected timeout %s", cfg.Timeout)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error without endpoint")
	}
}

// TestFromEnvOverrides verifies environment values are picked up.
func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CHATBOT_API_ENDPOINT", " https://bot.example/chat ")
	t.Setenv("TEST_DATA_DIR", "cases")
	t.Setenv("EVAL_MODEL", "gpt-4.1")
	t.Setenv("EVAL_RUN_ASYNC", "no")
	t.Setenv("CHATBOT_TIMEOUT_SECONDS", "2.5")
	t.Setenv("JUDGE_MODEL", "gpt-4o")

	cfg := FromEnv()
	if cfg.Endpoint != "https://bot.example/chat" {
		t.Fatalf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.TestDir != "cases" || cfg.DefaultModel != "gpt-4.1" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Concurrent {
		t.Fatalf("expected concurrency disabled")
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("unexpected timeout %s", cfg.Timeout)
	}
	if cfg.JudgeModel != "gpt-4o" {
		t.Fatalf("unexpected judge model %q", cfg.JudgeModel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// TestTruthy verifies the accepted boolean spellings.
func TestTruthy(t *testing.T) {
	for _, raw := range []string{"true", "1", "T", "y", "YES"} {
		if !truthy(raw, false) {
			t.Fatalf("expected %q to be truthy", raw)
		}
	}
	for _, raw := range []string{"false", "0", "off", "nope"} {
		if truthy(raw, true) {
			t.Fatalf("expected %q to be falsy", raw)
		}
	}
	if !truthy("", true) || truthy("", false) {
		t.Fatalf("empty value must use the fallback")
	}
}
