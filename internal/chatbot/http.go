package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chateval/internal/testcase"
)

const defaultTimeout = 30 * time.Second

// HTTPClient talks to a chatbot endpoint over HTTP. The request body
// carries both the latest input and the full message history; the
// response body is probed for the reply under the field names chatbot
// APIs commonly use.
type HTTPClient struct {
	Endpoint string
	APIKey   string
	Client   HTTPDoer
}

// NewHTTPClient constructs a network client for the given endpoint.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration, client HTTPDoer) (*HTTPClient, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("chatbot endpoint is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		Endpoint: strings.TrimSpace(endpoint),
		APIKey:   apiKey,
		Client:   client,
	}, nil
}

type chatRequest struct {
	Input    string             `json:"input"`
	Messages []testcase.Message `json:"messages"`
}

// Send posts the exchange to the endpoint and extracts the reply.
func (c *HTTPClient) Send(ctx context.Context, input string, history []testcase.Message) (Reply, error) {
	messages := make([]testcase.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, testcase.Message{Role: testcase.RoleUser, Content: input})
	payload, err := json.Marshal(chatRequest{Input: input, Messages: messages})
	if err != nil {
		return Reply{}, clientErrorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, clientErrorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return Reply{}, &ClientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, clientErrorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Reply{}, clientErrorf("endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	reply, err := extractReply(body)
	if err != nil {
		return Reply{}, &ClientError{Err: err}
	}
	return reply, nil
}

// Close releases the transport's idle connections when it owns any.
func (c *HTTPClient) Close() error {
	if client, ok := c.Client.(*http.Client); ok {
		client.CloseIdleConnections()
	}
	return nil
}
