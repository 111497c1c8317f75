// Package model defines the language-model call boundary: a single
// request/response text completion given an instruction preamble and a
// prompt. Provider adapters live in subpackages.
package model

import (
	"context"
	"fmt"
	"sync"
)

// Request is the normalized model input assembled by the orchestrator.
type Request struct {
	Instructions string `json:"instructions"` // system preamble (persona + tool contract)
	Prompt       string `json:"prompt"`       // user-facing prompt body
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed model output.
type Response struct {
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason"`
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the minimal interface the orchestrator needs to drive generation.
// Implementations must honor ctx cancellation; a hung upstream call otherwise
// blocks the whole turn.
type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model for tests. It serves scripted
// responses in FIFO order first, then canned prompt-keyed responses, then a
// generic echo.
type MockModel struct {
	info Info

	mu        sync.Mutex
	responses map[string]string
	script    []scripted
	calls     int
}

type scripted struct {
	text string
	err  error
}

// NewMockModel constructs a MockModel identified by name.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// QueueResponse appends a scripted completion served before any canned one.
func (m *MockModel) QueueResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{text: text})
}

// QueueError appends a scripted failure.
func (m *MockModel) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{err: err})
}

// Calls reports how many times Generate has been invoked.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		if next.err != nil {
			return Response{}, next.err
		}
		return Response{Text: next.text, FinishReason: "stop"}, nil
	}
	if text, ok := m.responses[req.Prompt]; ok {
		return Response{Text: text, FinishReason: "stop"}, nil
	}
	return Response{Text: fmt.Sprintf("Mock response to: %s", req.Prompt), FinishReason: "stop"}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
