// Package analysis implements the analyzer collaborator: valuation scoring,
// news sentiment tallying, risk assessment, and the resulting recommendation.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

type Analyzer struct {
	calc   *Calculator
	memory ports.MemoryStore
	clock  ports.Clock
}

var _ ports.Analyzer = (*Analyzer)(nil)

// NewAnalyzer wires the calculator and the memory bank. The bank is read-only
// here: it supplies the prior report for trend comparison.
func NewAnalyzer(memory ports.MemoryStore, clock ports.Clock) *Analyzer {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Analyzer{
		calc:   NewCalculator(),
		memory: memory,
		clock:  clock,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, ticker string, research domain.ResearchData, sessionID string) (domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.Analysis{}, err
	}
	if ticker == "" {
		return domain.Analysis{}, errors.New("analyze: empty ticker")
	}

	financials := a.analyzeFinancials(research.Financials)
	sentiment := summarizeSentiment(research.News)
	risk := assessRisk(financials, sentiment)

	analysis := domain.Analysis{
		Ticker:         ticker,
		Timestamp:      a.clock.Now(),
		Financials:     financials,
		Sentiment:      sentiment,
		Risk:           risk,
		Recommendation: a.recommend(financials, sentiment, risk),
	}

	if trend, ok := a.compareWithPast(ctx, ticker, analysis); ok {
		analysis.Trend = &trend
	}

	return analysis, nil
}

func (a *Analyzer) analyzeFinancials(metrics domain.FinancialMetrics) domain.FinancialAnalysis {
	score := a.calc.ValuationScore(metrics.PERatio, metrics.RevenueGrowth, metrics.ProfitMargin)

	return domain.FinancialAnalysis{
		ValuationScore:    score,
		ValuationCategory: CategorizeValuation(score),
		KeyMetrics: map[string]string{
			"pe_ratio":   orNA(metrics.PERatio),
			"revenue":    orNA(metrics.Revenue),
			"earnings":   orNA(metrics.Earnings),
			"market_cap": orNA(metrics.MarketCap),
		},
		FinancialHealth: assessFinancialHealth(metrics),
	}
}

var positiveCues = []string{"strong", "beats", "beat", "surge", "record", "growth", "launches", "profit", "upgrade", "rally"}
var negativeCues = []string{"miss", "drop", "fall", "decline", "lawsuit", "recall", "downgrade", "loss", "warning", "slump"}

// classifySentiment labels an article, preferring an upstream label when the
// source supplied one.
func classifySentiment(article domain.NewsArticle) string {
	if article.Sentiment != "" {
		return article.Sentiment
	}

	text := strings.ToLower(article.Title + " " + article.Snippet)
	positive, negative := 0, 0
	for _, cue := range positiveCues {
		if strings.Contains(text, cue) {
			positive++
		}
	}
	for _, cue := range negativeCues {
		if strings.Contains(text, cue) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return domain.SentimentPositive
	case negative > positive:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func summarizeSentiment(news []domain.NewsArticle) domain.SentimentSummary {
	if len(news) == 0 {
		return domain.SentimentSummary{Overall: domain.SentimentNeutral}
	}

	summary := domain.SentimentSummary{}
	for _, article := range news {
		switch classifySentiment(article) {
		case domain.SentimentPositive:
			summary.PositiveCount++
		case domain.SentimentNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
	}

	switch {
	case summary.PositiveCount > summary.NegativeCount:
		summary.Overall = domain.SentimentPositive
	case summary.NegativeCount > summary.PositiveCount:
		summary.Overall = domain.SentimentNegative
	default:
		summary.Overall = domain.SentimentNeutral
	}

	consensus := max(summary.PositiveCount, max(summary.NegativeCount, summary.NeutralCount))
	summary.Confidence = float64(consensus) / float64(len(news)) * 100

	for _, article := range news[:min(3, len(news))] {
		summary.RecentHeadlines = append(summary.RecentHeadlines, article.Title)
	}

	return summary
}

// assessRisk starts from a neutral 50 and moves with valuation and sentiment;
// higher means riskier.
func assessRisk(financials domain.FinancialAnalysis, sentiment domain.SentimentSummary) domain.RiskAssessment {
	score := 50.0
	var factors []string

	switch financials.ValuationCategory {
	case "overvalued":
		score += 15
		factors = append(factors, "Stock may be overvalued")
	case "undervalued":
		score -= 10
	}

	switch sentiment.Overall {
	case domain.SentimentNegative:
		score += 20
		factors = append(factors, "Negative news sentiment")
	case domain.SentimentPositive:
		score -= 15
	}

	if sentiment.Confidence < 50 {
		score += 10
		factors = append(factors, "Mixed or uncertain market sentiment")
	}

	score = clamp(score, 0, 100)

	level := domain.RiskMedium
	switch {
	case score < 30:
		level = domain.RiskLow
	case score >= 60:
		level = domain.RiskHigh
	}

	return domain.RiskAssessment{
		Score:       int(score),
		Level:       level,
		Factors:     factors,
		Mitigations: suggestMitigations(level),
	}
}

func suggestMitigations(level string) []string {
	switch level {
	case domain.RiskHigh:
		return []string{
			"Consider smaller position size",
			"Use stop-loss orders",
			"Diversify across multiple stocks",
		}
	case domain.RiskMedium:
		return []string{
			"Monitor regularly",
			"Maintain balanced portfolio",
		}
	default:
		return []string{"Continue regular monitoring"}
	}
}

func (a *Analyzer) recommend(financials domain.FinancialAnalysis, sentiment domain.SentimentSummary, risk domain.RiskAssessment) domain.Recommendation {
	action, confidence := a.calc.RecommendationFromScore(financials.ValuationScore)

	return domain.Recommendation{
		Action:     action,
		Confidence: confidence,
		Reasoning: fmt.Sprintf("Valuation score %.1f: %s signal. Sentiment: %s, Risk: %s.",
			financials.ValuationScore, action, sentiment.Overall, risk.Level),
		TimeHorizon: timeHorizon(risk.Level),
		KeyPoints: []string{
			fmt.Sprintf("Valuation: %.1f/100", financials.ValuationScore),
			"Sentiment: " + sentiment.Overall,
			"Risk: " + risk.Level,
		},
	}
}

func timeHorizon(riskLevel string) string {
	switch riskLevel {
	case domain.RiskLow:
		return "long-term (1+ years)"
	case domain.RiskHigh:
		return "short-term (< 6 months)"
	default:
		return "medium-term (6-12 months)"
	}
}

// compareWithPast relates the current analysis to the latest stored report,
// when one exists.
func (a *Analyzer) compareWithPast(ctx context.Context, ticker string, current domain.Analysis) (domain.TrendComparison, bool) {
	if a.memory == nil {
		return domain.TrendComparison{}, false
	}

	previous, err := a.memory.RetrieveLatest(ctx, ticker)
	if err != nil {
		// ErrNoAnalysis is the first-run case; any other lookup failure is
		// also non-fatal here since the trend is advisory.
		return domain.TrendComparison{}, false
	}

	delta := current.Financials.ValuationScore - previous.Report.Financials.ValuationScore

	return domain.TrendComparison{
		PreviousStoredAt: previous.StoredAt,
		ValuationDelta:   delta,
		SentimentShift:   previous.Report.Sentiment.Overall + " -> " + current.Sentiment.Overall,
		Improved:         delta > 0,
	}, true
}

func assessFinancialHealth(metrics domain.FinancialMetrics) string {
	capBillions, ok := parseMarketCapBillions(metrics.MarketCap)
	margin, marginOK := parsePercentage(metrics.ProfitMargin)

	switch {
	case ok && capBillions > 10 && marginOK && margin > 0.08:
		return "healthy"
	case marginOK && margin < 0:
		return "strained"
	default:
		return "stable"
	}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
