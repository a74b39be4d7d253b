package safety

import (
	"context"
	"sort"
	"time"

	"DipSentinel/internal/collector"
	"DipSentinel/internal/model"
)

// AnalyzeMatches assesses the news of each match in turn. Successive
// assessments start at least delay apart to stay under the feed's rate limit.
func (e *Engine) AnalyzeMatches(ctx context.Context, matches []model.ScreenMatch, threshold int, delay time.Duration) []model.AnalyzedMatch {
	gate := collector.NewGate(delay, e.pacing...)
	out := make([]model.AnalyzedMatch, len(matches))
	for i, m := range matches {
		out[i].ScreenMatch = m
		if ctx.Err() != nil || gate.Wait(ctx) != nil {
			continue
		}
		a := e.Assess(ctx, m.Ticker, m.Name)
		safe := IsSafeDrop(a, threshold)
		out[i].NewsAnalysis = a.Summarize()
		out[i].IsSafe = &safe
	}
	return out
}

// Wrap joins matches without news analysis.
func Wrap(matches []model.ScreenMatch) []model.AnalyzedMatch {
	out := make([]model.AnalyzedMatch, len(matches))
	for i, m := range matches {
		out[i].ScreenMatch = m
	}
	return out
}

// SortBySafety orders matches by safety score, then by drop, both descending.
// Matches without analysis count as score zero.
func SortBySafety(matches []model.AnalyzedMatch) {
	score := func(m model.AnalyzedMatch) int {
		if m.NewsAnalysis == nil {
			return 0
		}
		return m.NewsAnalysis.SafetyScore
	}
	sort.SliceStable(matches, func(i, j int) bool {
		si, sj := score(matches[i]), score(matches[j])
		if si != sj {
			return si > sj
		}
		return matches[i].DropPct > matches[j].DropPct
	})
}
