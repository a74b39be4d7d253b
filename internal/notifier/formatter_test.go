package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"DipSentinel/internal/model"
)

func analyzed(ticker, name string, drop float64, score int, safe bool) model.AnalyzedMatch {
	return model.AnalyzedMatch{
		ScreenMatch:  model.ScreenMatch{Ticker: ticker, Name: name, DropPct: drop, CurrentPrice: 10, Currency: "USD"},
		NewsAnalysis: &model.NewsSummary{SafetyScore: score},
		IsSafe:       &safe,
	}
}

func TestFormatScanReport(t *testing.T) {
	now := time.Date(2025, 3, 4, 22, 30, 0, 0, time.UTC)
	matches := []model.AnalyzedMatch{
		analyzed("AAA", "A & Sons", 25.5, 80, true),
		analyzed("BBB", "Bad Co", 28, 20, false),
	}
	got := FormatScanReport([]string{"sp500"}, 20, 30, 459, matches, now)

	assert.Contains(t, got, "2025-03-04")
	assert.Contains(t, got, "Scanned 459 tickers, 2 in band")
	assert.Contains(t, got, "Safe drops (1)")
	assert.Contains(t, got, "<b>AAA</b> A &amp; Sons: -25.50% @ 10.00 USD (score 80)")
	assert.NotContains(t, got, "BBB")
}

func TestFormatScanReport_NoSafeDrops(t *testing.T) {
	got := FormatScanReport([]string{"dax"}, 20, 30, 40, nil, time.Now())
	assert.Contains(t, got, "No safe drops today.")
}

func TestFormatAssessment(t *testing.T) {
	a := model.SafetyAssessment{
		Ticker:      "XYZ",
		SafetyScore: 52,
		Assessment:  model.AssessmentAvoid,
		Message:     "Critical issues detected: fraud",
		News: []model.NewsItem{{
			Headline:  model.Headline{Title: "XYZ <fraud>", Source: "Wire"},
			Sentiment: model.Sentiment{Interpretation: "negative"},
		}},
	}
	got := FormatAssessment(a)
	assert.Contains(t, got, "<b>XYZ</b> news: avoid (score 52)")
	assert.Contains(t, got, "XYZ &lt;fraud&gt; <i>(Wire, negative)</i>")
}
