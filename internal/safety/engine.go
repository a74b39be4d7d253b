// Package safety scores whether a price drop is explained by severe news.
package safety

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/calculator"
	"DipSentinel/internal/collector"
	"DipSentinel/internal/metrics"
	"DipSentinel/internal/model"
)

const (
	DefaultThreshold = 50
	DefaultLimit     = 10

	baseScore        = 75.0
	sentimentWeight  = 15.0
	criticalPenalty  = 15.0
	criticalMaxCut   = 40.0
	moderatePenalty  = 5.0
	moderateMaxCut   = 15.0
	safeScore        = 60.0
	cautionScore     = 40.0
	cautionCap       = 59.0
	negativeSentLine = -0.1
)

// HeadlineSource supplies raw headlines for a ticker.
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context, ticker, companyName string, limit int) []model.Headline
}

// Engine turns headlines into a SafetyAssessment.
type Engine struct {
	source HeadlineSource
	model  SentimentModel
	rules  []Rule
	limit  int
	pacing []collector.GateOption
	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the override chain.
func WithRules(rules []Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithLimit caps the headlines analysed per ticker.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithPacing configures the gate that spaces assessments in AnalyzeMatches.
func WithPacing(opts ...collector.GateOption) Option {
	return func(e *Engine) { e.pacing = opts }
}

// NewEngine creates an Engine. A nil model selects VADER.
func NewEngine(source HeadlineSource, m SentimentModel, opts ...Option) *Engine {
	if m == nil {
		m = NewVaderModel()
	}
	e := &Engine{
		source: source,
		model:  m,
		rules:  DefaultRules,
		limit:  DefaultLimit,
		logger: log.With().Str("component", "safety").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assess fetches the ticker's headlines and evaluates them.
func (e *Engine) Assess(ctx context.Context, ticker, companyName string) model.SafetyAssessment {
	headlines := e.source.FetchHeadlines(ctx, ticker, companyName, e.limit)
	a := e.Evaluate(headlines)
	a.Ticker = ticker
	metrics.NewsAssessments.WithLabelValues(string(a.Assessment)).Inc()
	e.logger.Debug().Str("ticker", ticker).Int("news", len(a.News)).Int("score", a.SafetyScore).
		Str("assessment", string(a.Assessment)).Msg("News assessed")
	return a
}

// ScoreHeadline applies the model, the override chain and the keyword checks to one headline.
func (e *Engine) ScoreHeadline(h model.Headline) model.NewsItem {
	text := h.Text()
	ev := Inspect(text)
	polarity, subjectivity := e.model.Score(text)
	polarity = ApplyRules(e.rules, polarity, ev)

	return model.NewsItem{
		Headline: h,
		Sentiment: model.Sentiment{
			Polarity:       calculator.Round(polarity, 3),
			Subjectivity:   calculator.Round(subjectivity, 3),
			Interpretation: Interpret(polarity),
		},
		HasCriticalKeywords: len(ev.Critical) > 0,
		CriticalKeywords:    nonNil(ev.Critical),
		HasModerateKeywords: len(ev.Moderate) > 0,
		ModerateKeywords:    nonNil(ev.Moderate),
		PriceMoveOnly:       PriceMoveOnly(text, ev),
	}
}

// Evaluate scores headlines without any I/O. Duplicate titles are dropped,
// first occurrence wins, and at most the engine limit is analysed.
func (e *Engine) Evaluate(headlines []model.Headline) model.SafetyAssessment {
	seen := make(map[string]bool, len(headlines))
	var items []model.NewsItem
	for _, h := range headlines {
		if seen[h.Title] {
			continue
		}
		seen[h.Title] = true
		if len(items) == e.limit {
			break
		}
		items = append(items, e.ScoreHeadline(h))
	}

	if len(items) == 0 {
		return model.SafetyAssessment{
			News:                  []model.NewsItem{},
			CriticalKeywordsFound: []string{},
			ModerateKeywordsFound: []string{},
			SafetyScore:           50,
			Assessment:            model.AssessmentUnknown,
			Message:               "No recent news found",
		}
	}

	var sum float64
	var counted int
	var critical, moderate []string
	hasNegative := false
	for _, it := range items {
		if !it.PriceMoveOnly {
			sum += it.Sentiment.Polarity
			counted++
			if it.Sentiment.Polarity < negativeSentLine {
				hasNegative = true
			}
		}
		critical = appendUnique(critical, it.CriticalKeywords)
		moderate = appendUnique(moderate, it.ModerateKeywords)
	}
	overall := 0.0
	if counted > 0 {
		overall = sum / float64(counted)
	}

	score := baseScore + overall*sentimentWeight
	if len(critical) > 0 {
		score -= math.Min(criticalMaxCut, criticalPenalty*float64(len(critical)))
	}
	if len(moderate) > 0 {
		score -= math.Min(moderateMaxCut, moderatePenalty*float64(len(moderate)))
	}
	score = math.Max(0, math.Min(100, score))

	var assessment model.Assessment
	var message string
	switch {
	case len(critical) > 0:
		assessment = model.AssessmentAvoid
		message = "Critical issues detected: " + strings.Join(head(critical, 3), ", ")
	case hasNegative:
		assessment = model.AssessmentCaution
		message = "Negative news detected beyond price movement"
		score = math.Min(score, cautionCap)
	case score >= safeScore:
		assessment = model.AssessmentSafe
		if len(moderate) > 0 {
			message = fmt.Sprintf("Minor concerns (%s), but no critical issues", strings.Join(head(moderate, 2), ", "))
		} else {
			message = "No significant negative news detected"
		}
	case score >= cautionScore:
		assessment = model.AssessmentCaution
		message = "Some concerns detected, review news carefully"
	default:
		assessment = model.AssessmentAvoid
		message = "Multiple negative signals detected"
	}

	return model.SafetyAssessment{
		News:                  items,
		OverallSentiment:      calculator.Round(overall, 3),
		CriticalIssues:        len(critical) > 0,
		CriticalKeywordsFound: nonNil(critical),
		ModerateIssues:        len(moderate) > 0,
		ModerateKeywordsFound: nonNil(moderate),
		SafetyScore:           int(math.RoundToEven(score)),
		Assessment:            assessment,
		Message:               message,
	}
}

// IsSafeDrop reports whether a drop is safe: no critical issue and a score of
// at least threshold.
func IsSafeDrop(a model.SafetyAssessment, threshold int) bool {
	return !a.CriticalIssues && a.SafetyScore >= threshold
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		dup := false
		for _, d := range dst {
			if d == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
