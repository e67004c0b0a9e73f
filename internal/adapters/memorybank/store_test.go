package memorybank

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()

	config := viper.New()
	config.Set("memory.path", path)

	store, err := New(config, nil)
	require.NoError(t, err)
	return store
}

func sampleReport(ticker, sessionID string) domain.Report {
	return domain.Report{
		Ticker:           ticker,
		ReportDate:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		ExecutiveSummary: ticker + " Analysis Summary: Recommendation: Hold",
		Company:          domain.CompanyInfo{Name: ticker + " Corp", Sector: "Technology"},
		Financials: domain.FinancialAnalysis{
			ValuationScore:    62.5,
			ValuationCategory: "overvalued",
			KeyMetrics:        map[string]string{"pe_ratio": "28.10", "market_cap": "$2.10T"},
			FinancialHealth:   "healthy",
		},
		Sentiment: domain.SentimentSummary{
			Overall:       domain.SentimentPositive,
			PositiveCount: 3,
			Confidence:    75,
		},
		Risk: domain.RiskAssessment{
			Score:   35,
			Level:   domain.RiskMedium,
			Factors: []string{"Stock may be overvalued"},
		},
		Recommendation: domain.Recommendation{
			Action:     domain.ActionHold,
			Confidence: 60,
			Reasoning:  "Valuation score 62.5: Hold signal.",
		},
		RecentNews:  []domain.NewsArticle{{Title: ticker + " beats earnings", Sentiment: domain.SentimentPositive}},
		SessionID:   sessionID,
		GeneratedAt: time.Date(2026, 3, 2, 10, 0, 1, 0, time.UTC),
	}
}

func TestStoreThenRetrieveLatestRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "memory.toml"))
	report := sampleReport("AAPL", "sess-1")

	before := time.Now()
	require.NoError(t, store.Store(context.Background(), "AAPL", report))

	record, err := store.RetrieveLatest(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, report, record.Report)
	assert.Equal(t, "AAPL", record.Ticker)
	assert.False(t, record.StoredAt.Before(before))
}

func TestRetrieveLatestUnknownTickerReturnsSentinel(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "memory.toml"))

	_, err := store.RetrieveLatest(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, domain.ErrNoAnalysis)
}

func TestRetrieveHistoryUnknownTickerIsEmptyNotError(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "memory.toml"))

	history, err := store.RetrieveHistory(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRepeatedStoresAppendAndLatestShifts(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "memory.toml"))

	first := sampleReport("AAPL", "sess-1")
	second := sampleReport("AAPL", "sess-2")
	require.NoError(t, store.Store(context.Background(), "AAPL", first))
	require.NoError(t, store.Store(context.Background(), "AAPL", second))

	history, err := store.RetrieveHistory(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "sess-1", history[0].Report.SessionID)
	assert.Equal(t, "sess-2", history[1].Report.SessionID)
	assert.False(t, history[1].StoredAt.Before(history[0].StoredAt))

	latest, err := store.RetrieveLatest(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "sess-2", latest.Report.SessionID)
}

func TestHistorySurvivesReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memory.toml")
	store := newTestStore(t, path)

	report := sampleReport("AAPL", "sess-1")
	require.NoError(t, store.Store(context.Background(), "AAPL", report))
	require.NoError(t, store.Store(context.Background(), "MSFT", sampleReport("MSFT", "sess-1")))

	reloaded := newTestStore(t, path)

	record, err := reloaded.RetrieveLatest(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, report, record.Report)
	assert.Equal(t, []string{"AAPL", "MSFT"}, reloaded.Tickers())
}

func TestMissingFileMeansNoHistory(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Empty(t, store.Tickers())
}

func TestCorruptFileFailsConstruction(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memory.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [not toml"), 0o600))

	config := viper.New()
	config.Set("memory.path", path)

	_, err := New(config, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode memory bank file")
}

func TestUnsupportedSchemaVersionFailsConstruction(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memory.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0o600))

	config := viper.New()
	config.Set("memory.path", path)

	_, err := New(config, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported memory bank schema version")
}

func TestFailedPersistLeavesMemoryUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bankDir := filepath.Join(dir, "bank")
	store := newTestStore(t, filepath.Join(bankDir, "memory.toml"))

	// Occupy the bank directory path with a regular file, so the atomic
	// write fails.
	require.NoError(t, os.WriteFile(bankDir, []byte("file, not a directory"), 0o600))

	err := store.Store(context.Background(), "AAPL", sampleReport("AAPL", "sess-1"))
	require.Error(t, err)

	var persistErr *domain.PersistenceError
	require.ErrorAs(t, err, &persistErr)

	_, err = store.RetrieveLatest(context.Background(), "AAPL")
	assert.ErrorIs(t, err, domain.ErrNoAnalysis)
}

func TestConcurrentStoresForDistinctTickers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memory.toml")
	store := newTestStore(t, path)
	tickers := []string{"AAPL", "GOOGL", "MSFT", "AMZN"}

	var wg sync.WaitGroup
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			assert.NoError(t, store.Store(context.Background(), ticker, sampleReport(ticker, "sess-1")))
		}(ticker)
	}
	wg.Wait()

	reloaded := newTestStore(t, path)
	assert.Equal(t, []string{"AAPL", "AMZN", "GOOGL", "MSFT"}, reloaded.Tickers())
}

func TestStoreRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "memory.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Store(ctx, "AAPL", sampleReport("AAPL", "sess-1"))
	assert.ErrorIs(t, err, context.Canceled)
}
