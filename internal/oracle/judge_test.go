package oracle

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"chateval/internal/metric"
)

type stubCompleter struct {
	reply   string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.reply}},
		},
	}, nil
}

// TestJudgeScore verifies prompt assembly and verdict parsing.
func TestJudgeScore(t *testing.T) {
	completer := &stubCompleter{reply: `{"score": 0.9, "reason": "On topic."}`}
	judge, err := NewJudge(JudgeConfig{Client: completer, Model: "judge-1"})
	if err != nil {
		t.Fatalf("new judge: %v", err)
	}
	m := metric.Metric{Name: "AnswerRelevancy", Threshold: 0.8, Instructions: "Judge relevance."}
	verdict, err := judge.Score(context.Background(), m, Inputs{
		Input:        "What is the capital of France?",
		ActualOutput: "Paris is the capital of France.",
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if verdict.Score != 0.9 || verdict.Reason != "On topic." {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if completer.lastReq.Model != "judge-1" {
		t.Fatalf("expected default judge model, got %q", completer.lastReq.Model)
	}
}

// TestJudgeModelOverride verifies the per-metric model wins.
func TestJudgeModelOverride(t *testing.T) {
	completer := &stubCompleter{reply: `{"score": 1, "reason": ""}`}
	judge, err := NewJudge(JudgeConfig{Client: completer, Model: "judge-1"})
	if err != nil {
		t.Fatalf("new judge: %v", err)
	}
	m := metric.Metric{Name: "Faithfulness", Model: "judge-2"}
	if _, err := judge.Score(context.Background(), m, Inputs{}); err != nil {
		t.Fatalf("score: %v", err)
	}
	if completer.lastReq.Model != "judge-2" {
		t.Fatalf("expected metric model override, got %q", completer.lastReq.Model)
	}
}

// TestJudgeAPIFailure verifies API errors become OracleError.
func TestJudgeAPIFailure(t *testing.T) {
	completer := &stubCompleter{err: errors.New("rate limited")}
	judge, err := NewJudge(JudgeConfig{Client: completer})
	if err != nil {
		t.Fatalf("new judge: %v", err)
	}
	_, err = judge.Score(context.Background(), metric.Metric{Name: "Bias"}, Inputs{})
	var oracleErr *OracleError
	if !errors.As(err, &oracleErr) {
		t.Fatalf("expected oracle error, got %v", err)
	}
	if oracleErr.Metric != "Bias" {
		t.Fatalf("expected metric name in error, got %q", oracleErr.Metric)
	}
}

// TestNewJudgeRequiresKey verifies construction without a client needs a key.
func TestNewJudgeRequiresKey(t *testing.T) {
	if _, err := NewJudge(JudgeConfig{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

// TestParseVerdict verifies tolerant verdict decoding.
func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		score float64
	}{
		{"bare json", `{"score": 0.75, "reason": "ok"}`, 0.75},
		{"fenced", "```json\n{\"score\": 0.4, \"reason\": \"weak\"}\n```", 0.4},
		{"surrounded", `Here is my verdict: {"score": 1.0, "reason": "solid"} Thanks!`, 1.0},
		{"clamped high", `{"score": 7, "reason": ""}`, 1.0},
		{"clamped low", `{"score": -1, "reason": ""}`, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := parseVerdict(tt.reply)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if verdict.Score != tt.score {
				t.Fatalf("expected score %v, got %v", tt.score, verdict.Score)
			}
		})
	}
	if _, err := parseVerdict("no verdict here"); err == nil {
		t.Fatalf("expected error for missing verdict")
	}
}

// TestStaticOracle verifies the scripted oracle contract.
func TestStaticOracle(t *testing.T) {
	def := Verdict{Score: 0.6}
	static := &Static{
		Verdicts: map[string]Verdict{"AnswerRelevancy": {Score: 0.9, Reason: "scripted"}},
		Default:  &def,
	}
	verdict, err := static.Score(context.Background(), metric.Metric{Name: "AnswerRelevancy"}, Inputs{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if verdict.Score != 0.9 {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	verdict, err = static.Score(context.Background(), metric.Metric{Name: "Bias"}, Inputs{})
	if err != nil {
		t.Fatalf("score default: %v", err)
	}
	if verdict.Score != 0.6 {
		t.Fatalf("expected default verdict, got %+v", verdict)
	}

	failing := &Static{Fail: errors.New("offline")}
	_, err = failing.Score(context.Background(), metric.Metric{Name: "Bias"}, Inputs{})
	var oracleErr *OracleError
	if !errors.As(err, &oracleErr) {
		t.Fatalf("expected oracle error, got %v", err)
	}
}
