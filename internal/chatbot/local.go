package chatbot

import (
	"context"

	"chateval/internal/testcase"
)

// Responder is an in-process stand-in for the conversational service.
// Implementations answer directly, without a network hop.
type Responder interface {
	Respond(ctx context.Context, input string, history []testcase.Message) (Reply, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, input string, history []testcase.Message) (Reply, error)

// Respond calls the wrapped function.
func (fn ResponderFunc) Respond(ctx context.Context, input string, history []testcase.Message) (Reply, error) {
	return fn(ctx, input, history)
}

// LocalClient delivers exchanges to an in-process responder. Useful for
// fast tests of the harness itself and for applications that embed the
// chatbot.
type LocalClient struct {
	responder Responder
}

// NewLocalClient wraps a responder in the Client interface.
func NewLocalClient(responder Responder) *LocalClient {
	return &LocalClient{responder: responder}
}

// Send forwards the exchange to the responder. Failures are surfaced as
// ClientError like any transport failure.
func (c *LocalClient) Send(ctx context.Context, input string, history []testcase.Message) (Reply, error) {
	reply, err := c.responder.Respond(ctx, input, history)
	if err != nil {
		if _, ok := err.(*ClientError); ok {
			return Reply{}, err
		}
		return Reply{}, &ClientError{Err: err}
	}
	return reply, nil
}

// Close is a no-op for in-process clients.
func (c *LocalClient) Close() error {
	return nil
}
