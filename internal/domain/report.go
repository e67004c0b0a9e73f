package domain

import "time"

// Report is one finished per-ticker investment report.
type Report struct {
	Ticker           string
	ReportDate       time.Time
	ExecutiveSummary string
	ResearchSummary  string
	Company          CompanyInfo
	Financials       FinancialAnalysis
	Sentiment        SentimentSummary
	Risk             RiskAssessment
	Recommendation   Recommendation
	RecentNews       []NewsArticle
	SessionID        string
	GeneratedAt      time.Time
}

// MemoryRecord is one durably stored report for one ticker at one point in
// time. StoredAt is assigned by the memory bank, never by the caller.
type MemoryRecord struct {
	Ticker   string
	StoredAt time.Time
	Report   Report
}

// ComparativeReport summarizes a batch of per-ticker reports side by side.
type ComparativeReport struct {
	ReportDate     time.Time
	StocksAnalyzed int
	Comparison     []ComparisonRow
	TopPicks       []TopPick
	RiskBuckets    RiskBuckets
	Sentiments     SentimentBuckets
	Summary        string
}

type ComparisonRow struct {
	Ticker     string
	Action     string
	Confidence float64
	Sentiment  string
	RiskLevel  string
	RiskScore  int
}

type TopPick struct {
	Ticker     string
	Action     string
	Confidence float64
	Reasoning  string
}

type RiskBuckets struct {
	Low    []string
	Medium []string
	High   []string
}

type SentimentBuckets struct {
	Positive []string
	Neutral  []string
	Negative []string
}
