package ports

import (
	"context"
	"time"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

// SessionStore is the process-wide registry of live sessions. Implementations
// must be safe for concurrent use by in-flight batches; no caller may observe
// a partially registered session.
type SessionStore interface {
	// Create allocates a registered session with a fresh unique id.
	Create() *domain.Session
	// Get returns domain.ErrSessionNotFound for an unknown id.
	Get(id string) (*domain.Session, error)
	// Save upserts the session under its id and refreshes its updated-at
	// timestamp. Saving the same session repeatedly is safe.
	Save(session *domain.Session)
	// Delete reports whether the session existed.
	Delete(id string) bool
	// List returns live session ids in unspecified order.
	List() []string
	Count() int
	// EvictOlderThan removes sessions whose updated-at precedes now-maxAge
	// and returns how many were removed. Maintenance only; nothing in the
	// pipeline calls it automatically.
	EvictOlderThan(maxAge time.Duration) int
	Summary(id string) (domain.SessionSummary, error)
}

// MemoryStore is the durable, append-only-per-ticker history of finished
// reports. Store is the pipeline's only write path; records are never
// reordered or deleted.
type MemoryStore interface {
	// Store appends a record with a store-assigned timestamp and persists it
	// durably before returning. On failure it returns a
	// *domain.PersistenceError and leaves in-memory state unchanged.
	Store(ctx context.Context, ticker string, report domain.Report) error
	// RetrieveLatest returns domain.ErrNoAnalysis when the ticker has no
	// history.
	RetrieveLatest(ctx context.Context, ticker string) (domain.MemoryRecord, error)
	// RetrieveHistory returns the ticker's records in append order; an empty
	// slice, not an error, when the ticker is unknown.
	RetrieveHistory(ctx context.Context, ticker string) ([]domain.MemoryRecord, error)
}
