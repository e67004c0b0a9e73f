package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

type stubMemory struct {
	latest domain.MemoryRecord
	err    error
}

func (s *stubMemory) Store(context.Context, string, domain.Report) error { return nil }

func (s *stubMemory) RetrieveLatest(context.Context, string) (domain.MemoryRecord, error) {
	return s.latest, s.err
}

func (s *stubMemory) RetrieveHistory(context.Context, string) ([]domain.MemoryRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.MemoryRecord{s.latest}, nil
}

func cheapGrowthStock() domain.ResearchData {
	return domain.ResearchData{
		Ticker:      "AAPL",
		CompanyName: "Apple Inc.",
		Financials: domain.FinancialMetrics{
			PERatio:       "10.5",
			RevenueGrowth: "25%",
			ProfitMargin:  "30%",
			MarketCap:     "$2.5T",
			Revenue:       "$365.82B",
		},
		News: []domain.NewsArticle{
			{Title: "Apple beats expectations", Sentiment: domain.SentimentPositive},
			{Title: "Apple announces record growth", Sentiment: domain.SentimentPositive},
			{Title: "Apple supply chain steady", Sentiment: domain.SentimentNeutral},
		},
	}
}

func TestAnalyzeStrongFundamentalsYieldsBuy(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(&stubMemory{err: domain.ErrNoAnalysis}, nil)

	analysis, err := analyzer.Analyze(context.Background(), "AAPL", cheapGrowthStock(), "sess-1")
	require.NoError(t, err)

	// PE 10.5 (+25), growth 25% (+20), margin 30% (+15) on a 50 baseline,
	// clamped to 100.
	assert.InDelta(t, 100.0, analysis.Financials.ValuationScore, 0.01)
	assert.Equal(t, "overvalued", analysis.Financials.ValuationCategory)
	assert.Equal(t, domain.ActionBuy, analysis.Recommendation.Action)
	assert.InDelta(t, 95.0, analysis.Recommendation.Confidence, 0.01)
	assert.Equal(t, domain.SentimentPositive, analysis.Sentiment.Overall)
	assert.Nil(t, analysis.Trend, "no trend without prior analysis")
}

func TestAnalyzeWeakFundamentalsYieldsSell(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(&stubMemory{err: domain.ErrNoAnalysis}, nil)

	research := domain.ResearchData{
		Ticker: "XYZ",
		Financials: domain.FinancialMetrics{
			PERatio:       "48.0",
			RevenueGrowth: "-5%",
			ProfitMargin:  "2%",
		},
		News: []domain.NewsArticle{
			{Title: "XYZ faces lawsuit over recall"},
			{Title: "XYZ shares drop after earnings miss"},
		},
	}

	analysis, err := analyzer.Analyze(context.Background(), "XYZ", research, "sess-1")
	require.NoError(t, err)

	// 50 - 25 - 20 - 15 clamps to 0.
	assert.InDelta(t, 0.0, analysis.Financials.ValuationScore, 0.01)
	assert.Equal(t, domain.ActionSell, analysis.Recommendation.Action)
	assert.Equal(t, domain.SentimentNegative, analysis.Sentiment.Overall)
	assert.Equal(t, domain.RiskHigh, analysis.Risk.Level)
	assert.Contains(t, analysis.Risk.Factors, "Negative news sentiment")
}

func TestAnalyzeClassifiesUnlabelledHeadlines(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(&stubMemory{err: domain.ErrNoAnalysis}, nil)

	research := domain.ResearchData{
		Ticker: "MSFT",
		News: []domain.NewsArticle{
			{Title: "Microsoft posts strong cloud growth"},
			{Title: "Microsoft announces quarterly dividend"},
		},
	}

	analysis, err := analyzer.Analyze(context.Background(), "MSFT", research, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.Sentiment.PositiveCount)
	assert.Equal(t, 1, analysis.Sentiment.NeutralCount)
	assert.Equal(t, domain.SentimentPositive, analysis.Sentiment.Overall)
	assert.InDelta(t, 50.0, analysis.Sentiment.Confidence, 0.01)
	assert.Len(t, analysis.Sentiment.RecentHeadlines, 2)
}

func TestAnalyzeNoNewsIsNeutral(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(&stubMemory{err: domain.ErrNoAnalysis}, nil)

	analysis, err := analyzer.Analyze(context.Background(), "MSFT", domain.ResearchData{Ticker: "MSFT"}, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, domain.SentimentNeutral, analysis.Sentiment.Overall)
	assert.Zero(t, analysis.Sentiment.Confidence)
}

func TestAnalyzeBuildsTrendFromStoredReport(t *testing.T) {
	t.Parallel()

	storedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	memory := &stubMemory{latest: domain.MemoryRecord{
		Ticker:   "AAPL",
		StoredAt: storedAt,
		Report: domain.Report{
			Ticker:     "AAPL",
			Financials: domain.FinancialAnalysis{ValuationScore: 60},
			Sentiment:  domain.SentimentSummary{Overall: domain.SentimentNeutral},
		},
	}}

	analyzer := NewAnalyzer(memory, nil)

	analysis, err := analyzer.Analyze(context.Background(), "AAPL", cheapGrowthStock(), "sess-1")
	require.NoError(t, err)

	require.NotNil(t, analysis.Trend)
	assert.Equal(t, storedAt, analysis.Trend.PreviousStoredAt)
	assert.InDelta(t, 40.0, analysis.Trend.ValuationDelta, 0.01)
	assert.Equal(t, "neutral -> positive", analysis.Trend.SentimentShift)
	assert.True(t, analysis.Trend.Improved)
}

func TestAnalyzeRejectsEmptyTicker(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(nil, nil)

	_, err := analyzer.Analyze(context.Background(), "", domain.ResearchData{}, "sess-1")
	require.Error(t, err)
}

func TestAnalyzeAbortsOnCancelledContext(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, "AAPL", domain.ResearchData{}, "sess-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValuationScoreUnparseableInputsStayNeutral(t *testing.T) {
	t.Parallel()

	calc := NewCalculator()

	assert.InDelta(t, 50.0, calc.ValuationScore("N/A", "", "unknown"), 0.01)
}

func TestRecommendationThresholds(t *testing.T) {
	t.Parallel()

	calc := NewCalculator()

	action, confidence := calc.RecommendationFromScore(80)
	assert.Equal(t, domain.ActionBuy, action)
	assert.InDelta(t, 70.0, confidence, 0.01)

	action, confidence = calc.RecommendationFromScore(60)
	assert.Equal(t, domain.ActionHold, action)
	assert.InDelta(t, 60.0, confidence, 0.01)

	action, confidence = calc.RecommendationFromScore(40)
	assert.Equal(t, domain.ActionHold, action)
	assert.InDelta(t, 50.0, confidence, 0.01)

	action, confidence = calc.RecommendationFromScore(20)
	assert.Equal(t, domain.ActionSell, action)
	assert.InDelta(t, 65.0, confidence, 0.01)
}

func TestParseMarketCapBillions(t *testing.T) {
	t.Parallel()

	billions, ok := parseMarketCapBillions("$2.5T")
	require.True(t, ok)
	assert.InDelta(t, 2500.0, billions, 0.01)

	billions, ok = parseMarketCapBillions("$365.82B")
	require.True(t, ok)
	assert.InDelta(t, 365.82, billions, 0.01)

	_, ok = parseMarketCapBillions("unknown")
	assert.False(t, ok)
}
