package moodtrack

import (
	"context"
	"sync"
)

// InMemorySessionRepository is a thread-safe in-memory SessionRepository for
// development and tests. Data is lost on restart.
type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]SessionContext
	turns    map[string][]Turn
	maxTurns int
}

// NewInMemorySessionRepository keeps at most maxTurns turns per session (0 = unbounded).
func NewInMemorySessionRepository(maxTurns int) *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string]SessionContext),
		turns:    make(map[string][]Turn),
		maxTurns: maxTurns,
	}
}

func (r *InMemorySessionRepository) Load(_ context.Context, sessionID string) (*SessionContext, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *InMemorySessionRepository) Save(_ context.Context, s *SessionContext) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.SessionID] = *s
	return nil
}

func (r *InMemorySessionRepository) AppendTurn(_ context.Context, sessionID string, turn Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lst := append(r.turns[sessionID], turn)
	if r.maxTurns > 0 && len(lst) > r.maxTurns {
		lst = lst[len(lst)-r.maxTurns:]
	}
	r.turns[sessionID] = lst
	return nil
}

func (r *InMemorySessionRepository) RecentTurns(_ context.Context, sessionID string, limit int) ([]Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.turns[sessionID]
	if limit > 0 && limit < len(items) {
		items = items[len(items)-limit:]
	}
	result := make([]Turn, len(items))
	copy(result, items)
	return result, nil
}

// Compile-time interface check.
var _ SessionRepository = (*InMemorySessionRepository)(nil)
