package application

import (
	"context"
	"time"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

// QueryService is the read side: stored analyses and live sessions.
type QueryService struct {
	sessions ports.SessionStore
	memory   ports.MemoryStore
}

func NewQueryService(sessions ports.SessionStore, memory ports.MemoryStore) *QueryService {
	return &QueryService{
		sessions: sessions,
		memory:   memory,
	}
}

// PastAnalysis returns the most recent stored report for a ticker, or
// domain.ErrNoAnalysis when none exists.
func (s *QueryService) PastAnalysis(ctx context.Context, ticker string) (domain.MemoryRecord, error) {
	return s.memory.RetrieveLatest(ctx, ticker)
}

// History returns every stored report for a ticker in append order.
func (s *QueryService) History(ctx context.Context, ticker string) ([]domain.MemoryRecord, error) {
	return s.memory.RetrieveHistory(ctx, ticker)
}

func (s *QueryService) SessionSummary(id string) (domain.SessionSummary, error) {
	return s.sessions.Summary(id)
}

func (s *QueryService) Sessions() []string {
	return s.sessions.List()
}

func (s *QueryService) SessionCount() int {
	return s.sessions.Count()
}

// EvictSessions removes sessions idle for longer than maxAge and reports how
// many were removed.
func (s *QueryService) EvictSessions(maxAge time.Duration) int {
	return s.sessions.EvictOlderThan(maxAge)
}
