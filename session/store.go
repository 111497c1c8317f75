package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"dapoerjuna/persona"
)

// Default session lifetime and janitor interval for the TTL store.
const (
	DefaultTTL             = 2 * time.Hour
	defaultCleanupInterval = 10 * time.Minute
)

// Store keeps live sessions in a TTL cache. Idle sessions are evicted after
// the configured lifetime; a Get on an evicted id creates a fresh session.
type Store struct {
	cache           *gocache.Cache
	memoryCapacity  int
	defaultAttitude persona.Attitude
}

// NewStore builds a session store. ttl <= 0 selects DefaultTTL.
func NewStore(ttl time.Duration, memoryCapacity int, defaultAttitude persona.Attitude) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache:           gocache.New(ttl, defaultCleanupInterval),
		memoryCapacity:  memoryCapacity,
		defaultAttitude: defaultAttitude,
	}
}

// Get returns the live session for id, creating one lazily. Every access
// refreshes the TTL.
func (s *Store) Get(id string) *Session {
	if v, ok := s.cache.Get(id); ok {
		sess := v.(*Session)
		s.cache.SetDefault(id, sess)
		return sess
	}
	sess := New(id, s.memoryCapacity, s.defaultAttitude)
	s.cache.SetDefault(sess.ID, sess)
	return sess
}

// Delete removes a session immediately.
func (s *Store) Delete(id string) { s.cache.Delete(id) }

// Len reports the number of live (non-expired) sessions.
func (s *Store) Len() int { return s.cache.ItemCount() }
