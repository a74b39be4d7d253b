package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"DipSentinel/internal/model"
)

const maxReportRows = 15

// FormatScanReport formats the safe drops of a scheduled scan.
func FormatScanReport(markets []string, minDrop, maxDrop float64, scanned int, matches []model.AnalyzedMatch, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📉 <b>DipSentinel</b> | %s\n", now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Markets: %s | Band: %.0f-%.0f%%\n", strings.Join(markets, ", "), minDrop, maxDrop))
	b.WriteString(fmt.Sprintf("Scanned %d tickers, %d in band\n\n", scanned, len(matches)))

	var safe []model.AnalyzedMatch
	for _, m := range matches {
		if m.IsSafe != nil && *m.IsSafe {
			safe = append(safe, m)
		}
	}
	if len(safe) == 0 {
		b.WriteString("No safe drops today.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("✅ <b>Safe drops (%d):</b>\n", len(safe)))
	for i, m := range safe {
		if i == maxReportRows {
			b.WriteString(fmt.Sprintf("  … and %d more\n", len(safe)-maxReportRows))
			break
		}
		b.WriteString(fmt.Sprintf("  <b>%s</b> %s: -%.2f%% @ %.2f %s (score %d)\n",
			html.EscapeString(m.Ticker), html.EscapeString(m.Name), m.DropPct,
			m.CurrentPrice, html.EscapeString(m.Currency), m.NewsAnalysis.SafetyScore))
	}
	return b.String()
}

// FormatAssessment formats a single ticker's news verdict.
func FormatAssessment(a model.SafetyAssessment) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📰 <b>%s</b> news: %s (score %d)\n", html.EscapeString(a.Ticker), a.Assessment, a.SafetyScore))
	b.WriteString(html.EscapeString(a.Message) + "\n")
	for i, n := range a.News {
		if i == 5 {
			break
		}
		b.WriteString(fmt.Sprintf("\n• %s <i>(%s, %s)</i>", html.EscapeString(n.Title),
			html.EscapeString(n.Source), n.Sentiment.Interpretation))
	}
	return b.String()
}

// HelpText lists the bot commands.
const HelpText = "Commands:\n• /scan - run the watchlist scan now\n• /news TICKER - news verdict for one ticker"
