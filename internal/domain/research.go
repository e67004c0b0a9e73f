package domain

// ResearchData is the raw output of the research stage for one ticker.
// A degraded payload (fallback data after an upstream failure) is still a
// valid payload; Err carries the reason for downstream visibility.
type ResearchData struct {
	Ticker      string
	CompanyName string
	Company     CompanyInfo
	News        []NewsArticle
	Financials  FinancialMetrics
	Summary     string
	Sources     []string
	Err         string
}

// Degraded reports whether the researcher fell back to best-effort data.
func (r ResearchData) Degraded() bool { return r.Err != "" }

type CompanyInfo struct {
	Name        string
	Industry    string
	Sector      string
	Description string
	Sources     []string
}

type NewsArticle struct {
	Title     string
	Snippet   string
	URL       string
	Source    string
	Date      string
	Sentiment string
}

// FinancialMetrics carries display-formatted figures as fetched. The analysis
// calculator parses them back to numbers; "N/A" marks a missing value.
type FinancialMetrics struct {
	PERatio       string
	MarketCap     string
	Revenue       string
	Earnings      string
	ProfitMargin  string
	RevenueGrowth string
	WeekHigh52    string
	WeekLow52     string
	CurrentPrice  string
}
