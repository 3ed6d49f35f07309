// Package memory keeps a per-session sliding window of recent exchanges
// so follow-up questions can be resolved against earlier turns. The core
// pipeline never touches it; the HTTP layer reads history before a call
// and appends the new turn after a successful answer.
package memory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"hrassist/internal/query"
)

const (
	// DefaultWindow is how many completed turns a session retains.
	DefaultWindow = 10
	// DefaultSessions bounds how many sessions are tracked at once.
	DefaultSessions = 1024
	// DefaultTTL expires idle sessions.
	DefaultTTL = 30 * time.Minute
)

// Store holds per-session turn windows. Safe for concurrent use.
type Store struct {
	// The LRU is concurrency-safe on its own; the mutex makes the
	// read-modify-write in Append atomic.
	mu       sync.Mutex
	sessions *expirable.LRU[string, []query.Turn]
	window   int
}

// NewStore returns a session store. Non-positive sizes fall back to the
// defaults; a non-positive ttl disables expiry.
func NewStore(sessions, window int, ttl time.Duration) *Store {
	if sessions <= 0 {
		sessions = DefaultSessions
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Store{
		sessions: expirable.NewLRU[string, []query.Turn](sessions, nil, ttl),
		window:   window,
	}
}

// History returns a copy of the recorded turns for a session, oldest
// first. Unknown or blank session IDs return nil.
func (s *Store) History(sessionID string) []query.Turn {
	if sessionID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil
	}
	out := make([]query.Turn, len(turns))
	copy(out, turns)
	return out
}

// Append records a completed exchange, trimming the session to the window
// size. Blank session IDs are ignored.
func (s *Store) Append(sessionID string, turn query.Turn) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, _ := s.sessions.Get(sessionID)
	turns := make([]query.Turn, 0, len(existing)+1)
	turns = append(turns, existing...)
	turns = append(turns, turn)
	if len(turns) > s.window {
		turns = turns[len(turns)-s.window:]
	}
	s.sessions.Add(sessionID, turns)
}

// Clear drops a session's history.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Remove(sessionID)
}

// Len reports how many sessions currently hold history.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
