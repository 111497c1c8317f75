// Package session holds the per-session mutable state shared across turns:
// the persona attitude, the last multi-recipe result blob, and the rolling
// conversation memory. Only one turn may run per session at a time; the state
// is still mutex-guarded so UI goroutines cannot race it.
package session

import (
	"sync"

	"github.com/google/uuid"

	"dapoerjuna/memory"
	"dapoerjuna/persona"
)

// Session is the state container for one user session.
type Session struct {
	ID     string
	Memory *memory.Window

	mu          sync.RWMutex
	attitude    persona.Attitude
	lastRecipes string
}

// New creates a session with the given memory window capacity and default
// attitude.
func New(id string, memoryCapacity int, attitude persona.Attitude) *Session {
	if id == "" {
		id = NewID()
	}
	if attitude == "" {
		attitude = persona.AttitudeSupportive
	}
	return &Session{
		ID:       id,
		Memory:   memory.NewWindow(memoryCapacity),
		attitude: attitude,
	}
}

// NewID generates a unique session identifier.
func NewID() string { return uuid.NewString() }

// Attitude returns the current persona attitude.
func (s *Session) Attitude() persona.Attitude {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attitude
}

// SetAttitude updates the persona attitude.
func (s *Session) SetAttitude(a persona.Attitude) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attitude = a
}

// LastRecipes returns the most recent multi-block result set, the implicit
// default input for filter and detail tools.
func (s *Session) LastRecipes() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRecipes
}

// SetLastRecipes replaces the cached last result set.
func (s *Session) SetLastRecipes(blob string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRecipes = blob
}

// Reset clears conversation memory and the cached result set, keeping the
// attitude. Used by the UI's clear-history action.
func (s *Session) Reset() {
	s.Memory.Clear()
	s.SetLastRecipes("")
}
