package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) Tool {
	return NewFunctionTool(name, "echo "+name,
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(toolCtx *Context, args map[string]any) (string, error) {
			return name, nil
		},
	)
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(echoTool("a"), echoTool("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewRegistry_RejectsEmptyName(t *testing.T) {
	_, err := NewRegistry(echoTool(""))
	require.Error(t, err)
}

func TestRegistry_NamesSortedAndCopied(t *testing.T) {
	r, err := NewRegistry(echoTool("b"), echoTool("a"))
	require.NoError(t, err)

	names := r.Names()
	assert.Equal(t, []string{"a", "b"}, names)

	names[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistry_Describe(t *testing.T) {
	r, err := NewRegistry(echoTool("b"), echoTool("a"))
	require.NoError(t, err)
	assert.Equal(t, "a: echo a\nb: echo b", r.Describe())
}

func TestRegistry_DispatchUnknown(t *testing.T) {
	r, err := NewRegistry(echoTool("a"))
	require.NoError(t, err)

	toolCtx := NewContext(context.Background(), nil, nil, "call-1")
	_, err = r.Dispatch(toolCtx, &Call{Name: "nope"})

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "nope", de.Name)
}

func TestRegistry_Dispatch(t *testing.T) {
	r, err := NewRegistry(echoTool("a"))
	require.NoError(t, err)

	toolCtx := NewContext(context.Background(), nil, nil, "call-2")
	out, err := r.Dispatch(toolCtx, &Call{Name: "a", Args: map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, "a", out)
}
