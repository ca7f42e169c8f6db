package oracle

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"chateval/internal/metric"
)

const defaultJudgeModel = "gpt-4o-mini"

// ChatCompleter is the slice of the OpenAI client the judge uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Judge scores metrics by asking an LLM over any OpenAI-compatible
// API. One chat completion per metric; the reply must be a JSON
// verdict.
type Judge struct {
	client       ChatCompleter
	defaultModel string
}

// JudgeConfig configures the judge oracle.
type JudgeConfig struct {
	// APIKey authenticates against the judge endpoint.
	APIKey string
	// BaseURL overrides the API base for OpenAI-compatible providers.
	BaseURL string
	// Model is the fallback when a metric carries no model of its own.
	Model string
	// Client overrides the underlying API client, for tests.
	Client ChatCompleter
}

// NewJudge constructs the LLM judge.
func NewJudge(cfg JudgeConfig) (*Judge, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultJudgeModel
	}
	client := cfg.Client
	if client == nil {
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("judge api key is required")
		}
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if strings.TrimSpace(cfg.BaseURL) != "" {
			clientConfig.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
		}
		client = openai.NewClientWithConfig(clientConfig)
	}
	return &Judge{client: client, defaultModel: model}, nil
}

// JudgeFromEnv builds a judge using environment configuration.
func JudgeFromEnv(defaultModel string) (*Judge, error) {
	return NewJudge(JudgeConfig{
		APIKey:  strings.TrimSpace(os.Getenv("JUDGE_API_KEY")),
		BaseURL: strings.TrimSpace(os.Getenv("JUDGE_API_BASE")),
		Model:   defaultModel,
	})
}

// Score asks the judge model for a verdict on one metric.
func (j *Judge) Score(ctx context.Context, m metric.Metric, in Inputs) (Verdict, error) {
	model := m.Model
	if model == "" {
		model = j.defaultModel
	}
	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: judgeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildJudgePrompt(m, in)},
		},
	})
	if err != nil {
		return Verdict{}, &OracleError{Metric: m.Name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return Verdict{}, &OracleError{Metric: m.Name, Err: fmt.Errorf("judge returned no choices")}
	}
	verdict, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return Verdict{}, &OracleError{Metric: m.Name, Err: err}
	}
	return verdict, nil
}
