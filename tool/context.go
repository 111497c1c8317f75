package tool

import (
	"context"

	"dapoerjuna/logging"
	"dapoerjuna/session"
)

// Context carries per-call state into a tool invocation: the cancellation
// context of the surrounding turn, the session whose search results the
// tool may fall back on, a correlating call ID and a logger.
type Context struct {
	ctx     context.Context
	session *session.Session
	logger  logging.Logger
	callID  string
}

// NewContext creates a tool Context for a single invocation.
func NewContext(ctx context.Context, sess *session.Session, logger logging.Logger, callID string) *Context {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Context{ctx: ctx, session: sess, logger: logger, callID: callID}
}

// Context returns the cancellation context of the surrounding turn.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Session returns the conversation session, or nil when the tool runs
// outside a conversation (tests, one-shot invocations).
func (c *Context) Session() *session.Session { return c.session }

// Logger returns the logger scoped to this invocation.
func (c *Context) Logger() logging.Logger { return c.logger }

// CallID returns the identifier correlating the model request with this execution.
func (c *Context) CallID() string { return c.callID }
