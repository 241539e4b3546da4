// internal/store/memory.go
//
// In-memory session store.
// Each browser session owns one tic-tac-toe game (with its leaderboard) and
// one spelling bee game. Nothing outlives the process.
//
// Characteristics:
//   - Sessions keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get refreshes the session's last-seen time; Sweep drops idle sessions.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/blog/internal/bee"
	"github.com/robalobadob/blog/internal/board"
)

// ErrNotFound is returned by Get for unknown or swept sessions.
var ErrNotFound = errors.New("session not found")

// Session is the per-visitor state. Board is not synchronized on its own:
// hold the session lock while using it. Bee guards itself.
type Session struct {
	ID    string
	Board *board.Game
	Bee   *bee.Game

	mu       sync.Mutex
	lastSeen time.Time
}

// NewSession builds a session around a bee game with an empty board.
func NewSession(id string, b *bee.Game, now time.Time) *Session {
	return &Session{ID: id, Board: board.New(), Bee: b, lastSeen: now}
}

// Lock serializes access to the board.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the board lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Store defines the persistence interface for sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID and marks it as seen.
	Get(ctx context.Context, id string) (*Session, error)

	// Sweep removes sessions not seen since cutoff and returns how many.
	Sweep(cutoff time.Time) int

	// Len reports the number of live sessions.
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*Session), now: now}
}

func (m *memory) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	s.lastSeen = m.now()
	s.mu.Unlock()
	return s, nil
}

func (m *memory) Sweep(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
