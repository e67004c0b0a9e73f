package sessionstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func TestCreateRegistersRetrievableSession(t *testing.T) {
	t.Parallel()

	store := New(nil)
	session := store.Create()

	require.NotEmpty(t, session.ID())

	got, err := store.Get(session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.False(t, session.UpdatedAt().Before(session.CreatedAt()))
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	store := New(nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := store.Create().ID()
		require.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}

func TestGetUnknownIDReturnsSentinel(t *testing.T) {
	t.Parallel()

	store := New(nil)
	_, err := store.Get("no-such-session")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSaveIsIdempotentAndRefreshesUpdatedAt(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	store := New(clock)
	session := store.Create()

	clock.Set(clock.Now().Add(10 * time.Minute))
	store.Save(session)
	store.Save(session)

	got, err := store.Get(session.ID())
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), got.UpdatedAt())
	assert.Equal(t, 1, store.Count())
}

func TestDeleteReportsExistence(t *testing.T) {
	t.Parallel()

	store := New(nil)
	session := store.Create()

	assert.True(t, store.Delete(session.ID()))
	assert.False(t, store.Delete(session.ID()))

	_, err := store.Get(session.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestListReturnsLiveSessionIDs(t *testing.T) {
	t.Parallel()

	store := New(nil)
	first := store.Create()
	second := store.Create()

	assert.ElementsMatch(t, []string{first.ID(), second.ID()}, store.List())
}

func TestEvictOlderThanRemovesStaleSessionsOnly(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{}

	store := New(clock)

	clock.Set(base.Add(-48 * time.Hour))
	stale := store.Create()

	clock.Set(base.Add(-time.Hour))
	fresh := store.Create()

	clock.Set(base)
	evicted := store.EvictOlderThan(24 * time.Hour)

	assert.Equal(t, 1, evicted)
	_, err := store.Get(stale.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(fresh.ID())
	assert.NoError(t, err)
}

// Sessions created on a clock that diverges from wall time must never end up
// updated before they were created; mutations and eviction share the store's
// clock as their time base.
func TestMutationsShareStoreClockBase(t *testing.T) {
	t.Parallel()

	base := time.Now().Add(48 * time.Hour)
	clock := &fakeClock{now: base}
	store := New(clock)

	session := store.Create()
	session.AddResearchResult("AAPL", domain.ResearchData{Ticker: "AAPL"}, clock.Now())
	store.Save(session)

	assert.False(t, session.UpdatedAt().Before(session.CreatedAt()))
	assert.Equal(t, base, session.UpdatedAt())
	assert.Zero(t, store.EvictOlderThan(time.Hour), "freshly touched session must not age out")
}

func TestConcurrentCreateAndSaveIsSafe(t *testing.T) {
	t.Parallel()

	store := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := store.Create()
			session.AddResearchResult("AAPL", domain.ResearchData{Ticker: "AAPL"}, time.Now())
			store.Save(session)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Count())
}

func TestSummaryReflectsSessionContents(t *testing.T) {
	t.Parallel()

	store := New(nil)
	session := store.Create()
	session.AddResearchResult("GOOGL", domain.ResearchData{Ticker: "GOOGL"}, time.Now())

	summary, err := store.Summary(session.ID())
	require.NoError(t, err)
	assert.Equal(t, session.ID(), summary.ID)
	assert.Equal(t, []string{"GOOGL"}, summary.Tickers)

	_, err = store.Summary("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
