// Package sessionstore keeps the process-wide registry of live sessions.
// Sessions are ephemeral: they live for the process lifetime unless deleted
// or evicted explicitly.
package sessionstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	clock    ports.Clock
}

var _ ports.SessionStore = (*Store)(nil)

func New(clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{
		sessions: make(map[string]*domain.Session),
		clock:    clock,
	}
}

func (s *Store) Create() *domain.Session {
	session := domain.NewSession(uuid.New().String(), s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session

	return session
}

func (s *Store) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

func (s *Store) Save(session *domain.Session) {
	if session == nil {
		return
	}
	session.Touch(s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictOlderThan removes every session whose updated-at precedes now-maxAge.
// Never called from the pipeline; wired to the sessions cleanup command.
func (s *Store) EvictOlderThan(maxAge time.Duration) int {
	cutoff := s.clock.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, session := range s.sessions {
		if session.UpdatedAt().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) Summary(id string) (domain.SessionSummary, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.SessionSummary{}, err
	}
	return session.Summary(), nil
}
