// Package memory implements the rolling conversation window shared across
// turns within a session: a capped ordered sequence of (role, text) entries,
// appended after every produced message, oldest evicted past the bound.
package memory

import (
	"strings"
	"sync"
)

// Conversation roles recorded in the window.
const (
	RoleUser      = "user"
	RoleAssistant = "ai"
)

// DefaultCapacity bounds the window when none is configured.
const DefaultCapacity = 8

// Turn is one remembered (role, text) entry.
type Turn struct {
	Role string
	Text string
}

// Window is a bounded append-only conversation memory. Entries are never
// rewritten; exceeding the capacity evicts the oldest. Safe for concurrent
// use.
type Window struct {
	mu       sync.RWMutex
	capacity int
	turns    []Turn
}

// NewWindow creates a window bounded to capacity turns (DefaultCapacity when
// capacity <= 0).
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{capacity: capacity}
}

// Append records a turn, evicting the oldest entry when full.
func (w *Window) Append(role, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = append(w.turns, Turn{Role: role, Text: text})
	if len(w.turns) > w.capacity {
		w.turns = w.turns[len(w.turns)-w.capacity:]
	}
}

// Turns returns a copy of the remembered turns, oldest first.
func (w *Window) Turns() []Turn {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Len returns the number of remembered turns.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.turns)
}

// Render formats the window for prompt assembly, one "Role: text" line per
// turn. Empty string when nothing is remembered.
func (w *Window) Render() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.turns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range w.turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := "Human"
		if t.Role == RoleAssistant {
			label = "AI"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(t.Text)
	}
	return b.String()
}

// Clear drops every remembered turn.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = nil
}
