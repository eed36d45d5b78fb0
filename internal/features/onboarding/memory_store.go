package onboarding

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and as a fallback
// when Redis is not configured.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
	modes    map[int64]Mode
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]Session),
		modes:    make(map[int64]Mode),
	}
}

func (s *MemoryStore) GetSession(_ context.Context, userID int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	copied := session
	return &copied, nil
}

func (s *MemoryStore) SaveSession(_ context.Context, userID int64, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = *session
	return nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemoryStore) GetMode(_ context.Context, userID int64) (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modes[userID], nil
}

func (s *MemoryStore) SetMode(_ context.Context, userID int64, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[userID] = mode
	return nil
}

func (s *MemoryStore) ClearMode(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modes, userID)
	return nil
}
