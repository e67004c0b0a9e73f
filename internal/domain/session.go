package domain

import (
	"sync"
	"time"
)

// Session state keys written by the pipeline. Later stages and cross-run
// comparisons read them back through State.
const (
	StateKeyLastResearch = "last_research_timestamp"
	StateKeyAnalysis     = "analysis_data"
)

// Session is the shared per-run context for one or more ticker pipelines.
// All mutators are safe for concurrent use; sibling pipeline goroutines in a
// batch hold the same *Session.
type Session struct {
	mu        sync.RWMutex
	id        string
	createdAt time.Time
	updatedAt time.Time
	research  map[string]ResearchData
	state     map[string]any
	metadata  map[string]any
}

// NewSession builds an empty session. The id is assigned by the store and is
// immutable afterwards.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		id:        id,
		createdAt: now,
		updatedAt: now,
		research:  make(map[string]ResearchData),
		state:     make(map[string]any),
		metadata:  make(map[string]any),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// AddResearchResult records the research payload for a ticker. A later write
// for the same ticker replaces the prior one; there is no versioning within a
// session. The timestamp comes from the caller's clock so that updated-at
// shares one time base with creation and eviction.
func (s *Session) AddResearchResult(ticker string, data ResearchData, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.research[ticker] = data
	s.updatedAt = now
}

func (s *Session) ResearchResult(ticker string) (ResearchData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.research[ticker]
	return data, ok
}

// Tickers returns the symbols researched so far, in no particular order.
func (s *Session) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tickers := make([]string, 0, len(s.research))
	for ticker := range s.research {
		tickers = append(tickers, ticker)
	}
	return tickers
}

func (s *Session) UpdateState(key string, value any, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[key] = value
	s.updatedAt = now
}

func (s *Session) State(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.state[key]
	return value, ok
}

// SetMetadata records run metadata. Unlike state, metadata is written by the
// batch coordinator only, at batch start and completion.
func (s *Session) SetMetadata(key string, value any, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata[key] = value
	s.updatedAt = now
}

func (s *Session) Metadata(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.metadata[key]
	return value, ok
}

// Touch refreshes the updated-at timestamp. Called by the store on save so
// that eviction age tracks the last save, not just the last mutation.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = now
}

// SessionSummary is the read-side view of a session.
type SessionSummary struct {
	ID         string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Researched int
	Tickers    []string
}

func (s *Session) Summary() SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tickers := make([]string, 0, len(s.research))
	for ticker := range s.research {
		tickers = append(tickers, ticker)
	}
	return SessionSummary{
		ID:         s.id,
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
		Researched: len(s.research),
		Tickers:    tickers,
	}
}
