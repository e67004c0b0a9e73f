package domain

import "time"

// Sentiment labels used across analysis and reporting.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Risk levels, ordered from safest to riskiest.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Recommendation actions.
const (
	ActionBuy  = "Buy"
	ActionHold = "Hold"
	ActionSell = "Sell"
)

// Analysis is the output of the analyze stage for one ticker.
type Analysis struct {
	Ticker         string
	Timestamp      time.Time
	Financials     FinancialAnalysis
	Sentiment      SentimentSummary
	Risk           RiskAssessment
	Recommendation Recommendation

	// Trend is set when a prior stored report exists for the ticker.
	Trend *TrendComparison
}

type FinancialAnalysis struct {
	ValuationScore    float64
	ValuationCategory string // undervalued, fair, overvalued
	KeyMetrics        map[string]string
	FinancialHealth   string
}

type SentimentSummary struct {
	Overall         string
	PositiveCount   int
	NegativeCount   int
	NeutralCount    int
	Confidence      float64
	RecentHeadlines []string
}

type RiskAssessment struct {
	Score       int
	Level       string
	Factors     []string
	Mitigations []string
}

type Recommendation struct {
	Action      string
	Confidence  float64
	Reasoning   string
	TimeHorizon string
	KeyPoints   []string
}

// TrendComparison relates the current analysis to the latest stored report
// for the same ticker.
type TrendComparison struct {
	PreviousStoredAt time.Time
	ValuationDelta   float64
	SentimentShift   string
	Improved         bool
}
