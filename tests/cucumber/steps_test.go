package cucumber

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cucumber/godog"

	"chateval/internal/chatbot"
	"chateval/internal/eval"
	"chateval/internal/oracle"
	"chateval/internal/testcase"
)

// featureState holds scenario state for evaluation features.
type featureState struct {
	testCase    testcase.TestCase
	loadErr     error
	reply       string
	unreachable bool
	score       float64
	historySeen int
	result      eval.EvaluationResult
	evaluated   bool
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*state = featureState{}
		return ctx, nil
	})

	ctx.Step(`^a test case defined in "([^"]+)"$`, state.aTestCaseDefinedIn)
	ctx.Step(`^a test-case file "([^"]+)" that is invalid$`, state.anInvalidTestCaseFile)
	ctx.Step(`^the chatbot replies "([^"]+)"$`, state.theChatbotReplies)
	ctx.Step(`^the chatbot is unreachable$`, state.theChatbotIsUnreachable)
	ctx.Step(`^the scoring oracle returns a score of ([0-9.]+)$`, state.theOracleReturnsScore)
	ctx.Step(`^the evaluation is performed$`, state.theEvaluationIsPerformed)
	ctx.Step(`^the result should be successful$`, state.theResultShouldBeSuccessful)
	ctx.Step(`^the result should be a failure$`, state.theResultShouldBeAFailure)
	ctx.Step(`^the result should report an error$`, state.theResultShouldReportAnError)
	ctx.Step(`^the metric "([^"]+)" should have score ([0-9.]+)$`, state.theMetricShouldHaveScore)
	ctx.Step(`^the chatbot should have received (\d+) history messages$`, state.historyMessageCount)
	ctx.Step(`^no metric scores should be recorded$`, state.noMetricScores)
	ctx.Step(`^loading the test case fails$`, state.loadingFails)
}

func (s *featureState) aTestCaseDefinedIn(name string) error {
	path := filepath.Join("testdata", name)
	tc, err := testcase.LoadFile(path, testcase.LoadOptions{})
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.testCase = tc
	return nil
}

func (s *featureState) anInvalidTestCaseFile(name string) error {
	path := filepath.Join("testdata", name)
	_, s.loadErr = testcase.LoadFile(path, testcase.LoadOptions{})
	return nil
}

func (s *featureState) theChatbotReplies(reply string) error {
	s.reply = reply
	return nil
}

func (s *featureState) theChatbotIsUnreachable() error {
	s.unreachable = true
	return nil
}

func (s *featureState) theOracleReturnsScore(raw string) error {
	if _, err := fmt.Sscanf(raw, "%f", &s.score); err != nil {
		return fmt.Errorf("parse score %q: %w", raw, err)
	}
	return nil
}

func (s *featureState) theEvaluationIsPerformed() error {
	client := chatbot.NewLocalClient(chatbot.ResponderFunc(
		func(ctx context.Context, input string, history []testcase.Message) (chatbot.Reply, error) {
			if s.unreachable {
				return chatbot.Reply{}, fmt.Errorf("dial tcp: connection refused")
			}
			s.historySeen = len(history)
			return chatbot.Reply{Output: s.reply}, nil
		}))
	scorer := &oracle.Static{Default: &oracle.Verdict{Score: s.score, Reason: "scripted verdict"}}
	s.result = eval.Evaluate(context.Background(), s.testCase, client, scorer, eval.Options{})
	s.evaluated = true
	return nil
}

func (s *featureState) theResultShouldBeSuccessful() error {
	if !s.evaluated {
		return fmt.Errorf("evaluation was not performed")
	}
	if s.result.Errored() {
		return fmt.Errorf("evaluation errored: %s", s.result.Err)
	}
	if !s.result.Pass {
		return fmt.Errorf("expected pass, got failure: %+v", s.result.Metrics)
	}
	return nil
}

func (s *featureState) theResultShouldBeAFailure() error {
	if !s.evaluated {
		return fmt.Errorf("evaluation was not performed")
	}
	if s.result.Errored() {
		return fmt.Errorf("evaluation errored: %s", s.result.Err)
	}
	if s.result.Pass {
		return fmt.Errorf("expected failure, got pass")
	}
	return nil
}

func (s *featureState) theResultShouldReportAnError() error {
	if !s.result.Errored() {
		return fmt.Errorf("expected an errored result, got %+v", s.result)
	}
	return nil
}

func (s *featureState) theMetricShouldHaveScore(name, raw string) error {
	var want float64
	if _, err := fmt.Sscanf(raw, "%f", &want); err != nil {
		return fmt.Errorf("parse score %q: %w", raw, err)
	}
	for _, detail := range s.result.Metrics {
		if detail.Name != name {
			continue
		}
		if detail.Score != want {
			return fmt.Errorf("metric %s: score %.2f, want %.2f", name, detail.Score, want)
		}
		return nil
	}
	return fmt.Errorf("metric %s not found in result", name)
}

func (s *featureState) historyMessageCount(want int) error {
	if s.historySeen != want {
		return fmt.Errorf("chatbot received %d history messages, want %d", s.historySeen, want)
	}
	return nil
}

func (s *featureState) noMetricScores() error {
	if len(s.result.Metrics) != 0 {
		return fmt.Errorf("expected no metric results, got %d", len(s.result.Metrics))
	}
	return nil
}

func (s *featureState) loadingFails() error {
	if s.loadErr == nil {
		return fmt.Errorf("expected loading to fail")
	}
	return nil
}
