// Package reportgen assembles per-ticker reports and batch comparative
// reports from research and analysis output.
package reportgen

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

type Generator struct {
	clock ports.Clock
}

var _ ports.Reporter = (*Generator)(nil)

func NewGenerator(clock ports.Clock) *Generator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Generator{clock: clock}
}

func (g *Generator) GenerateReport(ctx context.Context, ticker string, research domain.ResearchData, analysis domain.Analysis, sessionID string) (domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}
	if ticker == "" {
		return domain.Report{}, errors.New("generate report: empty ticker")
	}

	now := g.clock.Now()

	return domain.Report{
		Ticker:     ticker,
		ReportDate: now,
		ExecutiveSummary: fmt.Sprintf(
			"%s Analysis Summary: Recommendation: %s | Market Sentiment: %s | Risk Level: %s",
			ticker,
			analysis.Recommendation.Action,
			analysis.Sentiment.Overall,
			analysis.Risk.Level,
		),
		ResearchSummary: research.Summary,
		Company:         research.Company,
		Financials:      analysis.Financials,
		Sentiment:       analysis.Sentiment,
		Risk:            analysis.Risk,
		Recommendation:  analysis.Recommendation,
		RecentNews:      research.News,
		SessionID:       sessionID,
		GeneratedAt:     now,
	}, nil
}

// GenerateComparativeReport is well-defined for any input size, including
// zero reports.
func (g *Generator) GenerateComparativeReport(ctx context.Context, reports []domain.Report, sessionID string) (domain.ComparativeReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.ComparativeReport{}, err
	}

	comparative := domain.ComparativeReport{
		ReportDate:     g.clock.Now(),
		StocksAnalyzed: len(reports),
	}

	buys, holds, sells := 0, 0, 0
	for _, report := range reports {
		comparative.Comparison = append(comparative.Comparison, domain.ComparisonRow{
			Ticker:     report.Ticker,
			Action:     report.Recommendation.Action,
			Confidence: report.Recommendation.Confidence,
			Sentiment:  report.Sentiment.Overall,
			RiskLevel:  report.Risk.Level,
			RiskScore:  report.Risk.Score,
		})

		switch report.Recommendation.Action {
		case domain.ActionBuy:
			buys++
		case domain.ActionSell:
			sells++
		default:
			holds++
		}

		switch report.Risk.Level {
		case domain.RiskLow:
			comparative.RiskBuckets.Low = append(comparative.RiskBuckets.Low, report.Ticker)
		case domain.RiskHigh:
			comparative.RiskBuckets.High = append(comparative.RiskBuckets.High, report.Ticker)
		default:
			comparative.RiskBuckets.Medium = append(comparative.RiskBuckets.Medium, report.Ticker)
		}

		switch report.Sentiment.Overall {
		case domain.SentimentPositive:
			comparative.Sentiments.Positive = append(comparative.Sentiments.Positive, report.Ticker)
		case domain.SentimentNegative:
			comparative.Sentiments.Negative = append(comparative.Sentiments.Negative, report.Ticker)
		default:
			comparative.Sentiments.Neutral = append(comparative.Sentiments.Neutral, report.Ticker)
		}
	}

	comparative.TopPicks = topPicks(reports, 3)
	comparative.Summary = fmt.Sprintf("Analyzed %d stocks. Recommendations: %d Buy, %d Hold, %d Sell.",
		len(reports), buys, holds, sells)

	return comparative, nil
}

// topPicks ranks by recommendation confidence, Buy recommendations first.
func topPicks(reports []domain.Report, limit int) []domain.TopPick {
	ranked := make([]domain.Report, len(reports))
	copy(ranked, reports)

	sort.SliceStable(ranked, func(i, j int) bool {
		left, right := ranked[i].Recommendation, ranked[j].Recommendation
		if (left.Action == domain.ActionBuy) != (right.Action == domain.ActionBuy) {
			return left.Action == domain.ActionBuy
		}
		return left.Confidence > right.Confidence
	})

	picks := make([]domain.TopPick, 0, min(limit, len(ranked)))
	for _, report := range ranked[:min(limit, len(ranked))] {
		picks = append(picks, domain.TopPick{
			Ticker:     report.Ticker,
			Action:     report.Recommendation.Action,
			Confidence: report.Recommendation.Confidence,
			Reasoning:  report.Recommendation.Reasoning,
		})
	}

	return picks
}
