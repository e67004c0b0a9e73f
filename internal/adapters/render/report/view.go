// Package report renders investment reports for terminal output.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

// Render formats one per-ticker report.
func Render(rep domain.Report) string {
	return renderReport(rep, newStyles())
}

// RenderComparative formats a batch comparative report.
func RenderComparative(comparative domain.ComparativeReport) string {
	return renderComparative(comparative, newStyles())
}

func renderReport(rep domain.Report, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Stock Report: %s", rep.Ticker)),
		s.header.Render(rep.GeneratedAt.Format("2006-01-02 15:04 MST")),
		"",
		s.value.Render(rep.ExecutiveSummary),
	}

	if rep.Company.Name != "" {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.label.Render("Company"),
			s.value.Render(fmt.Sprintf("%s (%s / %s)", rep.Company.Name, rep.Company.Industry, rep.Company.Sector)),
		)))
	}

	lines = append(lines, s.section.Render(renderFinancials(rep.Financials, s)))
	lines = append(lines, s.section.Render(renderSentiment(rep.Sentiment, s)))
	lines = append(lines, s.section.Render(renderRisk(rep.Risk, s)))
	lines = append(lines, s.section.Render(renderRecommendation(rep.Recommendation, s)))

	if len(rep.RecentNews) > 0 {
		news := []string{s.label.Render("Recent News")}
		for _, article := range rep.RecentNews {
			news = append(news, s.bullet.Render("- ")+s.value.Render(article.Title))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, news...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderFinancials(financials domain.FinancialAnalysis, s styles) string {
	lines := []string{
		s.label.Render("Financials"),
		s.value.Render(fmt.Sprintf("valuation: %.1f/100 (%s), health: %s",
			financials.ValuationScore, financials.ValuationCategory, financials.FinancialHealth)),
	}

	keys := make([]string, 0, len(financials.KeyMetrics))
	for key := range financials.KeyMetrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lines = append(lines, s.faint.Render(fmt.Sprintf("  %s: %s", key, financials.KeyMetrics[key])))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSentiment(sentiment domain.SentimentSummary, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.label.Render("Sentiment"),
		s.value.Render(fmt.Sprintf("%s (%d positive / %d neutral / %d negative, %.0f%% confidence)",
			sentiment.Overall,
			sentiment.PositiveCount,
			sentiment.NeutralCount,
			sentiment.NegativeCount,
			sentiment.Confidence,
		)),
	)
}

func renderRisk(risk domain.RiskAssessment, s styles) string {
	lines := []string{
		s.label.Render("Risk"),
		s.risk(risk.Level).Render(fmt.Sprintf("%s (%d/100)", risk.Level, risk.Score)),
	}
	for _, factor := range risk.Factors {
		lines = append(lines, s.bullet.Render("- ")+s.value.Render(factor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecommendation(rec domain.Recommendation, s styles) string {
	lines := []string{
		s.label.Render("Recommendation"),
		s.action(rec.Action).Render(fmt.Sprintf("%s (%.0f%% confidence, %s)", rec.Action, rec.Confidence, rec.TimeHorizon)),
		s.value.Render(rec.Reasoning),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderComparative(comparative domain.ComparativeReport, s styles) string {
	lines := []string{
		s.title.Render("Comparative Stock Report"),
		s.header.Render(fmt.Sprintf("stocks analyzed: %d", comparative.StocksAnalyzed)),
	}

	if comparative.StocksAnalyzed == 0 {
		lines = append(lines, s.empty.Render("No stocks analyzed."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := []string{s.label.Render("Comparison")}
	for _, row := range comparative.Comparison {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			s.value.Render(fmt.Sprintf("%-6s", row.Ticker)),
			" ",
			s.action(row.Action).Render(fmt.Sprintf("%-4s", row.Action)),
			" ",
			s.faint.Render(fmt.Sprintf("%3.0f%% conf", row.Confidence)),
			" ",
			s.value.Render(fmt.Sprintf("%-8s", row.Sentiment)),
			" ",
			s.risk(row.RiskLevel).Render(fmt.Sprintf("risk %s (%d)", row.RiskLevel, row.RiskScore)),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	if len(comparative.TopPicks) > 0 {
		picks := []string{s.label.Render("Top Picks")}
		for i, pick := range comparative.TopPicks {
			picks = append(picks, s.value.Render(fmt.Sprintf("%d. %s: %s (%.0f%%)", i+1, pick.Ticker, pick.Action, pick.Confidence)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, picks...)))
	}

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.label.Render("Risk"),
		s.value.Render("low:    "+joinOrNone(comparative.RiskBuckets.Low)),
		s.value.Render("medium: "+joinOrNone(comparative.RiskBuckets.Medium)),
		s.value.Render("high:   "+joinOrNone(comparative.RiskBuckets.High)),
	)))

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.label.Render("Sentiment"),
		s.value.Render("positive: "+joinOrNone(comparative.Sentiments.Positive)),
		s.value.Render("neutral:  "+joinOrNone(comparative.Sentiments.Neutral)),
		s.value.Render("negative: "+joinOrNone(comparative.Sentiments.Negative)),
	)))

	lines = append(lines, s.section.Render(s.value.Render(comparative.Summary)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func joinOrNone(tickers []string) string {
	if len(tickers) == 0 {
		return "none"
	}
	return strings.Join(tickers, ", ")
}
