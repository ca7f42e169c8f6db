package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"chateval/internal/testcase"
)

type stubDoer struct {
	status   int
	body     string
	err      error
	lastReq  *http.Request
	lastBody []byte
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.lastReq = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		s.lastBody = data
	}
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		Status:     fmt.Sprintf("%d", s.status),
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(s.body))),
	}, nil
}

// TestHTTPClientSend verifies request shape and reply extraction.
func TestHTTPClientSend(t *testing.T) {
	doer := &stubDoer{status: 200, body: `{"response": "Paris is the capital of France."}`}
	client, err := NewHTTPClient("https://bot.example/chat", "secret", 0, doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	history := []testcase.Message{
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello!"},
	}
	reply, err := client.Send(context.Background(), "What is the capital of France?", history)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply.Output != "Paris is the capital of France." {
		t.Fatalf("unexpected reply: %q", reply.Output)
	}
	if got := doer.lastReq.Header.Get("Authorization"); got != "Bearer secret" {
		t.Fatalf("expected bearer header, got %q", got)
	}
	var sent chatRequest
	if err := json.Unmarshal(doer.lastBody, &sent); err != nil {
		t.Fatalf("decode sent payload: %v", err)
	}
	if sent.Input != "What is the capital of France?" {
		t.Fatalf("unexpected input: %q", sent.Input)
	}
	if len(sent.Messages) != 3 || sent.Messages[2].Role != testcase.RoleUser {
		t.Fatalf("unexpected messages: %+v", sent.Messages)
	}
}

// TestHTTPClientNon2xx verifies status failures surface as ClientError.
func TestHTTPClientNon2xx(t *testing.T) {
	doer := &stubDoer{status: 503, body: `upstream unavailable`}
	client, err := NewHTTPClient("https://bot.example/chat", "", 0, doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Send(context.Background(), "Hi", nil)
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected client error, got %v", err)
	}
}

// TestHTTPClientTransportFailure verifies network errors are wrapped.
func TestHTTPClientTransportFailure(t *testing.T) {
	doer := &stubDoer{err: errors.New("connection refused")}
	client, err := NewHTTPClient("https://bot.example/chat", "", 0, doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Send(context.Background(), "Hi", nil)
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected client error, got %v", err)
	}
}

// TestHTTPClientMalformedBody verifies undecodable bodies fail.
func TestHTTPClientMalformedBody(t *testing.T) {
	doer := &stubDoer{status: 200, body: `{"unrelated": 1}`}
	client, err := NewHTTPClient("https://bot.example/chat", "", 0, doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Send(context.Background(), "Hi", nil)
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected client error, got %v", err)
	}
}

// TestNewHTTPClientRequiresEndpoint verifies factory validation.
func TestNewHTTPClientRequiresEndpoint(t *testing.T) {
	if _, err := NewHTTPClient("  ", "", 0, nil); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
