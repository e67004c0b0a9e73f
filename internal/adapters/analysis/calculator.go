package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

// Calculator holds the valuation arithmetic. Inputs arrive as the
// display-formatted strings the researcher produces ("25.5", "5.23%",
// "$2.5T"); unparseable values simply contribute nothing to the score.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

var numericCleaner = regexp.MustCompile(`[$,%\s]`)

// ValuationScore scores 0-100 from a neutral 50 baseline. Lower PE, higher
// revenue growth, and higher margin all push the score up.
func (c *Calculator) ValuationScore(peRatio, revenueGrowth, profitMargin string) float64 {
	score := 50.0

	if pe, ok := parseNumeric(peRatio); ok {
		switch {
		case pe < 12:
			score += 25
		case pe < 18:
			score += 15
		case pe < 25:
			score += 5
		case pe < 35:
			score -= 10
		default:
			score -= 25
		}
	}

	if growth, ok := parsePercentage(revenueGrowth); ok {
		switch {
		case growth > 0.20:
			score += 20
		case growth > 0.10:
			score += 10
		case growth > 0.05:
			score += 5
		case growth < 0:
			score -= 20
		}
	}

	if margin, ok := parsePercentage(profitMargin); ok {
		switch {
		case margin > 0.25:
			score += 15
		case margin > 0.15:
			score += 8
		case margin > 0.08:
			score += 3
		case margin < 0.05:
			score -= 15
		}
	}

	return clamp(score, 0, 100)
}

// RecommendationFromScore maps a valuation score to an action and a
// confidence figure.
func (c *Calculator) RecommendationFromScore(score float64) (string, float64) {
	switch {
	case score > 70:
		return domain.ActionBuy, min(95, 50+(score-70)*2)
	case score > 55:
		return domain.ActionHold, 60
	case score > 35:
		return domain.ActionHold, 50
	default:
		return domain.ActionSell, min(90, 50+(35-score))
	}
}

func CategorizeValuation(score float64) string {
	switch {
	case score < 40:
		return "undervalued"
	case score > 60:
		return "overvalued"
	default:
		return "fair"
	}
}

func parseNumeric(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	cleaned := numericCleaner.ReplaceAllString(value, "")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// parsePercentage normalizes to a fraction: values above 1 are assumed to be
// percent-formatted ("5.23" or "5.23%" both mean 5.23%).
func parsePercentage(value string) (float64, bool) {
	parsed, ok := parseNumeric(value)
	if !ok {
		return 0, false
	}
	if parsed > 1 {
		return parsed / 100, true
	}
	return parsed, true
}

// parseMarketCapBillions reads figures like "$2.5T" or "$365.82B".
func parseMarketCapBillions(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}

	cleaned := strings.ToUpper(strings.TrimSpace(value))
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(cleaned, "T"):
		multiplier = 1000
		cleaned = strings.TrimSuffix(cleaned, "T")
	case strings.HasSuffix(cleaned, "B"):
		cleaned = strings.TrimSuffix(cleaned, "B")
	case strings.HasSuffix(cleaned, "M"):
		multiplier = 0.001
		cleaned = strings.TrimSuffix(cleaned, "M")
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed * multiplier, true
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
