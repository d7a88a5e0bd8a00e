// Package session keeps the append-only analysis history of one user
// session. Nothing is persisted; a Session is discarded with its owner.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyperifyio/factlens/internal/analysis"
	"github.com/hyperifyio/factlens/internal/score"
)

// Session owns one user's history. Separate sessions share nothing.
type Session struct {
	ID        string
	StartedAt time.Time

	mu      sync.RWMutex
	history []analysis.Result
}

// New starts an empty session.
func New() *Session {
	return &Session{ID: uuid.NewString(), StartedAt: time.Now()}
}

// Append records a finished analysis.
func (s *Session) Append(r analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, r)
}

// Entries returns a copy of the history in insertion order.
func (s *Session) Entries() []analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]analysis.Result, len(s.history))
	copy(out, s.history)
	return out
}

// Len reports how many analyses the session holds.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Counts tallies the history by verdict label.
func (s *Session) Counts() map[score.Label]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[score.Label]int, 4)
	for _, r := range s.history {
		out[r.Verdict.Label]++
	}
	return out
}
