package memorybank

import (
	"fmt"
	"time"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Records []recordSchema `toml:"records,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported memory bank schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type recordSchema struct {
	Ticker   string       `toml:"ticker"`
	StoredAt string       `toml:"stored_at"`
	Report   reportSchema `toml:"report"`
}

type reportSchema struct {
	Ticker           string               `toml:"ticker"`
	ReportDate       string               `toml:"report_date"`
	ExecutiveSummary string               `toml:"executive_summary"`
	ResearchSummary  string               `toml:"research_summary,omitempty"`
	Company          companySchema        `toml:"company"`
	Financials       financialsSchema     `toml:"financials"`
	Sentiment        sentimentSchema      `toml:"sentiment"`
	Risk             riskSchema           `toml:"risk"`
	Recommendation   recommendationSchema `toml:"recommendation"`
	RecentNews       []newsSchema         `toml:"recent_news,omitempty"`
	SessionID        string               `toml:"session_id"`
	GeneratedAt      string               `toml:"generated_at"`
}

type companySchema struct {
	Name        string   `toml:"name"`
	Industry    string   `toml:"industry,omitempty"`
	Sector      string   `toml:"sector,omitempty"`
	Description string   `toml:"description,omitempty"`
	Sources     []string `toml:"sources,omitempty"`
}

type financialsSchema struct {
	ValuationScore    float64           `toml:"valuation_score"`
	ValuationCategory string            `toml:"valuation_category"`
	KeyMetrics        map[string]string `toml:"key_metrics,omitempty"`
	FinancialHealth   string            `toml:"financial_health,omitempty"`
}

type sentimentSchema struct {
	Overall         string   `toml:"overall"`
	PositiveCount   int      `toml:"positive_count"`
	NegativeCount   int      `toml:"negative_count"`
	NeutralCount    int      `toml:"neutral_count"`
	Confidence      float64  `toml:"confidence"`
	RecentHeadlines []string `toml:"recent_headlines,omitempty"`
}

type riskSchema struct {
	Score       int      `toml:"score"`
	Level       string   `toml:"level"`
	Factors     []string `toml:"factors,omitempty"`
	Mitigations []string `toml:"mitigations,omitempty"`
}

type recommendationSchema struct {
	Action      string   `toml:"action"`
	Confidence  float64  `toml:"confidence"`
	Reasoning   string   `toml:"reasoning,omitempty"`
	TimeHorizon string   `toml:"time_horizon,omitempty"`
	KeyPoints   []string `toml:"key_points,omitempty"`
}

type newsSchema struct {
	Title     string `toml:"title"`
	Snippet   string `toml:"snippet,omitempty"`
	URL       string `toml:"url,omitempty"`
	Source    string `toml:"source,omitempty"`
	Date      string `toml:"date,omitempty"`
	Sentiment string `toml:"sentiment,omitempty"`
}

func toSchema(record domain.MemoryRecord) recordSchema {
	report := record.Report

	return recordSchema{
		Ticker:   record.Ticker,
		StoredAt: record.StoredAt.Format(time.RFC3339Nano),
		Report: reportSchema{
			Ticker:           report.Ticker,
			ReportDate:       report.ReportDate.Format(time.RFC3339Nano),
			ExecutiveSummary: report.ExecutiveSummary,
			ResearchSummary:  report.ResearchSummary,
			Company: companySchema{
				Name:        report.Company.Name,
				Industry:    report.Company.Industry,
				Sector:      report.Company.Sector,
				Description: report.Company.Description,
				Sources:     report.Company.Sources,
			},
			Financials: financialsSchema{
				ValuationScore:    report.Financials.ValuationScore,
				ValuationCategory: report.Financials.ValuationCategory,
				KeyMetrics:        report.Financials.KeyMetrics,
				FinancialHealth:   report.Financials.FinancialHealth,
			},
			Sentiment: sentimentSchema{
				Overall:         report.Sentiment.Overall,
				PositiveCount:   report.Sentiment.PositiveCount,
				NegativeCount:   report.Sentiment.NegativeCount,
				NeutralCount:    report.Sentiment.NeutralCount,
				Confidence:      report.Sentiment.Confidence,
				RecentHeadlines: report.Sentiment.RecentHeadlines,
			},
			Risk: riskSchema{
				Score:       report.Risk.Score,
				Level:       report.Risk.Level,
				Factors:     report.Risk.Factors,
				Mitigations: report.Risk.Mitigations,
			},
			Recommendation: recommendationSchema{
				Action:      report.Recommendation.Action,
				Confidence:  report.Recommendation.Confidence,
				Reasoning:   report.Recommendation.Reasoning,
				TimeHorizon: report.Recommendation.TimeHorizon,
				KeyPoints:   report.Recommendation.KeyPoints,
			},
			RecentNews:  toNewsSchemas(report.RecentNews),
			SessionID:   report.SessionID,
			GeneratedAt: report.GeneratedAt.Format(time.RFC3339Nano),
		},
	}
}

func fromSchema(entry recordSchema) (domain.MemoryRecord, error) {
	storedAt, err := parseTimestamp(entry.StoredAt, "stored_at")
	if err != nil {
		return domain.MemoryRecord{}, err
	}
	reportDate, err := parseTimestamp(entry.Report.ReportDate, "report_date")
	if err != nil {
		return domain.MemoryRecord{}, err
	}
	generatedAt, err := parseTimestamp(entry.Report.GeneratedAt, "generated_at")
	if err != nil {
		return domain.MemoryRecord{}, err
	}

	return domain.MemoryRecord{
		Ticker:   entry.Ticker,
		StoredAt: storedAt,
		Report: domain.Report{
			Ticker:           entry.Report.Ticker,
			ReportDate:       reportDate,
			ExecutiveSummary: entry.Report.ExecutiveSummary,
			ResearchSummary:  entry.Report.ResearchSummary,
			Company: domain.CompanyInfo{
				Name:        entry.Report.Company.Name,
				Industry:    entry.Report.Company.Industry,
				Sector:      entry.Report.Company.Sector,
				Description: entry.Report.Company.Description,
				Sources:     entry.Report.Company.Sources,
			},
			Financials: domain.FinancialAnalysis{
				ValuationScore:    entry.Report.Financials.ValuationScore,
				ValuationCategory: entry.Report.Financials.ValuationCategory,
				KeyMetrics:        entry.Report.Financials.KeyMetrics,
				FinancialHealth:   entry.Report.Financials.FinancialHealth,
			},
			Sentiment: domain.SentimentSummary{
				Overall:         entry.Report.Sentiment.Overall,
				PositiveCount:   entry.Report.Sentiment.PositiveCount,
				NegativeCount:   entry.Report.Sentiment.NegativeCount,
				NeutralCount:    entry.Report.Sentiment.NeutralCount,
				Confidence:      entry.Report.Sentiment.Confidence,
				RecentHeadlines: entry.Report.Sentiment.RecentHeadlines,
			},
			Risk: domain.RiskAssessment{
				Score:       entry.Report.Risk.Score,
				Level:       entry.Report.Risk.Level,
				Factors:     entry.Report.Risk.Factors,
				Mitigations: entry.Report.Risk.Mitigations,
			},
			Recommendation: domain.Recommendation{
				Action:      entry.Report.Recommendation.Action,
				Confidence:  entry.Report.Recommendation.Confidence,
				Reasoning:   entry.Report.Recommendation.Reasoning,
				TimeHorizon: entry.Report.Recommendation.TimeHorizon,
				KeyPoints:   entry.Report.Recommendation.KeyPoints,
			},
			RecentNews:  fromNewsSchemas(entry.Report.RecentNews),
			SessionID:   entry.Report.SessionID,
			GeneratedAt: generatedAt,
		},
	}, nil
}

func toNewsSchemas(news []domain.NewsArticle) []newsSchema {
	if len(news) == 0 {
		return nil
	}
	out := make([]newsSchema, 0, len(news))
	for _, article := range news {
		out = append(out, newsSchema{
			Title:     article.Title,
			Snippet:   article.Snippet,
			URL:       article.URL,
			Source:    article.Source,
			Date:      article.Date,
			Sentiment: article.Sentiment,
		})
	}
	return out
}

func fromNewsSchemas(news []newsSchema) []domain.NewsArticle {
	if len(news) == 0 {
		return nil
	}
	out := make([]domain.NewsArticle, 0, len(news))
	for _, article := range news {
		out = append(out, domain.NewsArticle{
			Title:     article.Title,
			Snippet:   article.Snippet,
			URL:       article.URL,
			Source:    article.Source,
			Date:      article.Date,
			Sentiment: article.Sentiment,
		})
	}
	return out
}

func parseTimestamp(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s timestamp: %w", field, err)
	}
	return parsed, nil
}
