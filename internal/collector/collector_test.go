package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentinel/internal/model"
)

func newMocks() (*MockFetcher, *MockFetcher, *MockFetcher) {
	primary := &MockFetcher{Label: "yahoo", Series: map[string]*model.PriceSeries{
		"AAPL": MockSeries("AAPL", "yahoo", 100, 80),
	}}
	secondary := &MockFetcher{Label: "stooq", Series: map[string]*model.PriceSeries{
		"AAPL": MockSeries("AAPL", "stooq", 100, 90),
		"X":    MockSeries("X", "stooq", 50, 40),
	}}
	tertiary := &MockFetcher{Label: "alphavantage", Errs: map[string]error{"AAPL": ErrMissingAPIKey}}
	return primary, secondary, tertiary
}

func TestAuto_FetchHistoryFallsBack(t *testing.T) {
	primary, secondary, _ := newMocks()
	auto := NewAuto(primary, secondary)

	s, err := auto.FetchHistory(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Equal(t, "yahoo", s.Source)
	assert.Zero(t, secondary.CallCount("AAPL"))

	s, err = auto.FetchHistory(context.Background(), "X", "1y")
	require.NoError(t, err)
	assert.Equal(t, "stooq", s.Source)
	assert.Equal(t, 1, secondary.CallCount("X"))

	_, err = auto.FetchHistory(context.Background(), "NONE", "1y")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAuto_FetchPrimaryBatchFailure(t *testing.T) {
	primary, secondary, _ := newMocks()
	primary.BatchErr = errors.New("boom")
	auto := NewAuto(primary, secondary)

	got := auto.FetchPrimary(context.Background(), []string{"AAPL", "X"}, "1y")
	assert.Empty(t, got)
	assert.Same(t, HistoryFetcher(secondary), auto.Secondary())
}

func TestAuto_FetchPrimaryKeepsPartialBatch(t *testing.T) {
	primary, secondary, _ := newMocks()
	primary.Series["MSFT"] = MockSeries("MSFT", "yahoo", 100, 70)
	primary.BatchErr = errors.New("second chunk failed")
	primary.BatchKeep = 1
	auto := NewAuto(primary, secondary)

	got := auto.FetchPrimary(context.Background(), []string{"AAPL", "MSFT"}, "1y")
	require.Len(t, got, 1)
	assert.Equal(t, "yahoo", got["AAPL"].Source)
}

func TestAuto_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	primary, secondary, _ := newMocks()
	primary.BatchErr = errors.New("boom")
	auto := NewAuto(primary, secondary)

	for i := 0; i < 5; i++ {
		auto.FetchPrimary(context.Background(), []string{"AAPL"}, "1y")
	}
	before := len(primary.Calls)
	auto.FetchPrimary(context.Background(), []string{"AAPL"}, "1y")
	assert.Equal(t, before, len(primary.Calls), "open breaker must not reach the provider")
}

func TestAuto_OpenBreakerOnlyChangesRouting(t *testing.T) {
	primary, secondary, _ := newMocks()
	primary.Errs = map[string]error{"AAPL": errors.New("boom")}
	auto := NewAuto(primary, secondary)

	for i := 0; i < 5; i++ {
		s, err := auto.FetchHistory(context.Background(), "AAPL", "1y")
		require.NoError(t, err)
		assert.Equal(t, "stooq", s.Source)
	}
	before := len(primary.Calls)

	s, err := auto.FetchHistory(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Equal(t, "stooq", s.Source)
	assert.Equal(t, secondary.Series["AAPL"], s)
	assert.Equal(t, before, len(primary.Calls))
}

func TestCollector_FetchHistoryAbsent(t *testing.T) {
	primary, secondary, tertiary := newMocks()
	c := NewWithFetchers(primary, secondary, tertiary, primary)

	assert.NotNil(t, c.FetchHistory(context.Background(), "AAPL", "1y", ProviderYahoo))
	assert.Nil(t, c.FetchHistory(context.Background(), "X", "1y", ProviderYahoo))
	assert.Nil(t, c.FetchHistory(context.Background(), "AAPL", "1y", ProviderAlphaVantage))

	s := c.FetchHistory(context.Background(), "X", "1y", ProviderAuto)
	require.NotNil(t, s)
	assert.Equal(t, "stooq", s.Source)
}

func TestCollector_EmptySeriesIsAbsent(t *testing.T) {
	primary := &MockFetcher{Series: map[string]*model.PriceSeries{"E": {Symbol: "E"}}}
	c := NewWithFetchers(primary, &MockFetcher{}, &MockFetcher{}, primary)
	assert.Nil(t, c.FetchHistory(context.Background(), "E", "1y", ProviderYahoo))
}

func TestCollector_Resolve(t *testing.T) {
	primary, secondary, tertiary := newMocks()
	c := NewWithFetchers(primary, secondary, tertiary, primary)
	assert.Equal(t, ProviderStooq, c.Resolve("stooq"))
	assert.Equal(t, ProviderAuto, c.Resolve("unknown"))
	assert.Same(t, c.Auto, c.Fetcher(ProviderAuto))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "no_data", Outcome(ErrNoData))
	assert.Equal(t, "disabled", Outcome(ErrMissingAPIKey))
	assert.Equal(t, "rate_limited", Outcome(ErrRateLimited))
	assert.Equal(t, "cancelled", Outcome(context.Canceled))
	assert.Equal(t, "error", Outcome(errors.New("x")))
}
