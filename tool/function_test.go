package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool(fn func(toolCtx *Context, args map[string]any) (string, error)) *FunctionTool {
	return NewFunctionTool("sample", "sample tool",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"q": map[string]any{"type": "string"},
				"n": map[string]any{"type": "number"},
			},
			"required": []string{"q"},
		},
		fn,
	)
}

func TestFunctionTool_TypeMismatch(t *testing.T) {
	tl := newTestTool(func(toolCtx *Context, args map[string]any) (string, error) {
		return "", nil
	})

	toolCtx := NewContext(context.Background(), nil, nil, "c1")
	_, err := tl.Call(toolCtx, map[string]any{"q": 42})

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "VALIDATION_ERROR", te.Code)
}

func TestFunctionTool_WrapsPlainErrors(t *testing.T) {
	tl := newTestTool(func(toolCtx *Context, args map[string]any) (string, error) {
		return "", errors.New("boom")
	})

	toolCtx := NewContext(context.Background(), nil, nil, "c2")
	_, err := tl.Call(toolCtx, map[string]any{"q": "x"})

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "EXECUTION_ERROR", te.Code)
	assert.Equal(t, "boom", te.Message)
}

func TestFunctionTool_ForwardsToolErrors(t *testing.T) {
	custom := NewToolError("sample", "rate limited", "UPSTREAM_ERROR")
	tl := newTestTool(func(toolCtx *Context, args map[string]any) (string, error) {
		return "", custom
	})

	toolCtx := NewContext(context.Background(), nil, nil, "c3")
	_, err := tl.Call(toolCtx, map[string]any{"q": "x"})
	assert.Same(t, custom, err)
}

func TestFunctionTool_ExtraArgsAllowed(t *testing.T) {
	tl := newTestTool(func(toolCtx *Context, args map[string]any) (string, error) {
		return "ok", nil
	})

	toolCtx := NewContext(context.Background(), nil, nil, "c4")
	out, err := tl.Call(toolCtx, map[string]any{"q": "x", "unknown": true})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}
