package research

import (
	"fmt"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

// Best-effort data used when live sources are unavailable. The researcher
// contract is to degrade rather than fail, so every lookup has an answer.

var companyCatalog = map[string]domain.CompanyInfo{
	"AAPL": {
		Name:        "Apple Inc.",
		Industry:    "Technology",
		Sector:      "Consumer Electronics",
		Description: "Designs and sells consumer electronics, software, and services.",
	},
	"MSFT": {
		Name:        "Microsoft Corporation",
		Industry:    "Technology",
		Sector:      "Software",
		Description: "Develops software, cloud services, and devices.",
	},
	"GOOGL": {
		Name:        "Alphabet Inc.",
		Industry:    "Technology",
		Sector:      "Internet Services",
		Description: "Operates search, advertising, and cloud platforms.",
	},
}

func companyProfile(ticker string) domain.CompanyInfo {
	if info, ok := companyCatalog[ticker]; ok {
		return info
	}
	return domain.CompanyInfo{Name: ticker, Industry: "Unknown", Sector: "Unknown"}
}

func fallbackNews(ticker string) []domain.NewsArticle {
	return []domain.NewsArticle{
		{
			Title:     fmt.Sprintf("%s announces strong quarterly earnings", ticker),
			Snippet:   "Company beats expectations",
			URL:       "https://example.com/news1",
			Source:    "Simulated",
			Sentiment: domain.SentimentPositive,
		},
		{
			Title:     fmt.Sprintf("%s launches new product line", ticker),
			Snippet:   "Innovation drives growth",
			URL:       "https://example.com/news2",
			Source:    "Simulated",
			Sentiment: domain.SentimentPositive,
		},
		{
			Title:     fmt.Sprintf("Analysts split on %s outlook", ticker),
			Snippet:   "Mixed views on near-term performance",
			URL:       "https://example.com/news3",
			Source:    "Simulated",
			Sentiment: domain.SentimentNeutral,
		},
	}
}

func fallbackFinancials() domain.FinancialMetrics {
	return domain.FinancialMetrics{
		CurrentPrice:  "$150.25",
		PERatio:       "25.5",
		MarketCap:     "$2.5T",
		Revenue:       "$365.82B",
		Earnings:      "$93.74B",
		ProfitMargin:  "25.65%",
		RevenueGrowth: "5.23%",
		WeekHigh52:    "$180.00",
		WeekLow52:     "$120.00",
	}
}
