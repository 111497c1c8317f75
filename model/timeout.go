package model

import (
	"context"
	"time"
)

// timeoutModel bounds every Generate call with a deadline so a hung upstream
// call cannot block a turn indefinitely.
type timeoutModel struct {
	inner   Model
	timeout time.Duration
}

// WithTimeout wraps a Model so each Generate call is bounded by d. A
// non-positive d returns the model unchanged.
func WithTimeout(m Model, d time.Duration) Model {
	if d <= 0 {
		return m
	}
	return &timeoutModel{inner: m, timeout: d}
}

func (t *timeoutModel) Generate(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutModel) Info() Info { return t.inner.Info() }
