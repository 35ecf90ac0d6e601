// Package store persists per-session conversation transcripts.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/voicelane/voice-agent/pkg/agent"
)

// Store is the session transcript repository. Sessions are created
// implicitly on first append and are never destroyed by the store itself.
type Store interface {
	// Append adds a turn to the session's history, creating the session if
	// absent. Content is trimmed of surrounding whitespace before storing.
	Append(ctx context.Context, sessionID string, role agent.Role, content string) error

	// History returns the session's turns in append order. An unknown
	// session yields an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]agent.Turn, error)

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore keeps transcripts in an in-process map. The mutex only keeps
// the map itself safe under concurrent requests; interleaved appends to the
// same session from concurrent callers land in arrival order.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]agent.Turn
}

// NewMemoryStore creates an empty in-memory transcript store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]agent.Turn),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, sessionID string, role agent.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], agent.Turn{
		Role:    role,
		Content: strings.TrimSpace(content),
	})
	return nil
}

// History implements Store. The returned slice is a copy; callers may hold it
// across later appends.
func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]agent.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]agent.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
