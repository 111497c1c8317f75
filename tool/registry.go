package tool

import (
	"fmt"
	"sort"
	"strings"
)

// DispatchError reports a call that names a tool the registry does not hold.
type DispatchError struct {
	Name string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Registry is a closed set of tools, fixed at construction. Lookups after
// construction never mutate it, so it is safe for concurrent use.
type Registry struct {
	tools map[string]Tool
	names []string
}

// NewRegistry builds a registry from the given tools. Construction fails on
// an unnamed tool or a duplicate name so wiring mistakes surface at startup
// rather than mid-conversation.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		r.tools[name] = t
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

// Describe renders a "name: description" catalog line per tool, for
// embedding in the model's instructions.
func (r *Registry) Describe() string {
	var b strings.Builder
	for i, name := range r.names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(r.tools[name].Description())
	}
	return b.String()
}

// Dispatch resolves the call's tool and executes it. An unknown name yields
// *DispatchError; tool failures surface as *ToolError from the tool itself.
func (r *Registry) Dispatch(toolCtx *Context, call *Call) (string, error) {
	t, ok := r.tools[call.Name]
	if !ok {
		return "", &DispatchError{Name: call.Name}
	}
	return t.Call(toolCtx, call.Args)
}
