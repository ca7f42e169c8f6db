package chatbot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chateval/internal/testcase"
)

// Reply is the chatbot's answer to one exchange, together with any
// retrieval context the endpoint reported alongside it.
type Reply struct {
	Output           string
	RetrievalContext []string
}

// Client delivers test-case inputs to the chatbot under test. Send
// takes the latest user input plus the preceding conversation history
// (empty for single-turn cases). Close releases any held resources and
// is invoked once per batch by the front end.
type Client interface {
	Send(ctx context.Context, input string, history []testcase.Message) (Reply, error)
	Close() error
}

// ClientError reports a transport or endpoint failure. The evaluator
// treats it as a failed evaluation for that test case, not a fatal run
// abort.
type ClientError struct {
	Err error
}

// Error returns a readable message for the client failure.
func (err *ClientError) Error() string {
	return fmt.Sprintf("chatbot client: %v", err.Err)
}

// Unwrap exposes the underlying failure.
func (err *ClientError) Unwrap() error {
	return err.Err
}

func clientErrorf(format string, args ...any) error {
	return &ClientError{Err: fmt.Errorf(format, args...)}
}

// Options configures client construction. When Responder is set the
// factory builds an in-process client and the endpoint settings are
// ignored; otherwise Endpoint is required.
type Options struct {
	Endpoint  string
	APIKey    string
	Timeout   time.Duration
	Responder Responder

	// HTTPClient overrides the transport used by the network client.
	HTTPClient HTTPDoer
}

// New selects a client variant from the options.
func New(opts Options) (Client, error) {
	if opts.Responder != nil {
		return NewLocalClient(opts.Responder), nil
	}
	return NewHTTPClient(opts.Endpoint, opts.APIKey, opts.Timeout, opts.HTTPClient)
}

// HTTPDoer abstracts the HTTP client used by the network transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
