package safety

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentinel/internal/collector"
	"DipSentinel/internal/model"
)

type perTicker map[string][]model.Headline

func (p perTicker) FetchHeadlines(_ context.Context, ticker, _ string, _ int) []model.Headline {
	return p[ticker]
}

func TestAnalyzeMatchesAndSort(t *testing.T) {
	src := perTicker{
		"BAD":  {hl("BAD faces fraud charges")},
		"GOOD": {hl("GOOD raises guidance")},
	}
	e := NewEngine(src, fakeModel{})
	matches := []model.ScreenMatch{
		{Ticker: "BAD", DropPct: 29},
		{Ticker: "NONE", DropPct: 25},
		{Ticker: "GOOD", DropPct: 21},
	}

	got := e.AnalyzeMatches(context.Background(), matches, DefaultThreshold, 0)
	require.Len(t, got, 3)
	require.NotNil(t, got[0].IsSafe)
	assert.False(t, *got[0].IsSafe)
	assert.Equal(t, model.AssessmentAvoid, got[0].NewsAnalysis.Assessment)
	assert.True(t, *got[1].IsSafe)
	assert.Equal(t, 50, got[1].NewsAnalysis.SafetyScore)
	assert.True(t, *got[2].IsSafe)
	assert.Equal(t, 1, got[2].NewsAnalysis.NewsCount)

	SortBySafety(got)
	assert.Equal(t, "GOOD", got[0].Ticker)
	assert.Equal(t, "BAD", got[1].Ticker)
	assert.Equal(t, "NONE", got[2].Ticker)
}

func TestWrapAndSortWithoutNews(t *testing.T) {
	got := Wrap([]model.ScreenMatch{{Ticker: "A", DropPct: 21}, {Ticker: "B", DropPct: 28}})
	SortBySafety(got)
	assert.Equal(t, "B", got[0].Ticker)
	assert.Nil(t, got[0].NewsAnalysis)
	assert.Nil(t, got[0].IsSafe)
}

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func TestAnalyzeMatches_SpacesAssessments(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := NewEngine(perTicker{}, fakeModel{},
		WithPacing(collector.WithGateClock(clock.Now), collector.WithGateSleep(clock.Sleep)))
	matches := []model.ScreenMatch{{Ticker: "A"}, {Ticker: "B"}, {Ticker: "C"}}

	got := e.AnalyzeMatches(context.Background(), matches, DefaultThreshold, 500*time.Millisecond)
	require.Len(t, got, 3)
	for _, m := range got {
		assert.NotNil(t, m.NewsAnalysis)
	}
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, clock.slept)

	clock.slept = nil
	e.AnalyzeMatches(context.Background(), matches, DefaultThreshold, 0)
	assert.Empty(t, clock.slept)
}

func TestAnalyzeMatches_CanceledSkipsAssessment(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewEngine(perTicker{}, fakeModel{})

	got := e.AnalyzeMatches(ctx, []model.ScreenMatch{{Ticker: "A"}}, DefaultThreshold, time.Second)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Ticker)
	assert.Nil(t, got[0].NewsAnalysis)
	assert.Nil(t, got[0].IsSafe)
}
