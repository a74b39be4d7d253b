package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"DipSentinel/internal/model"
)

// Auto tries the primary provider first and falls back to the secondary per
// ticker. It is a strategy over two providers, not a provider of its own.
type Auto struct {
	primary   BatchFetcher
	secondary HistoryFetcher
	breaker   *gobreaker.CircuitBreaker
	logger    zerolog.Logger
}

// NewAuto composes primary and secondary. After five consecutive failed
// primary calls the breaker opens for a minute and batches go straight to the
// secondary provider.
func NewAuto(primary BatchFetcher, secondary HistoryFetcher) *Auto {
	a := &Auto{
		primary:   primary,
		secondary: secondary,
		logger:    log.With().Str("component", "auto_fetcher").Logger(),
	}
	a.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        primary.Name(),
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoData) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			a.logger.Warn().Str("provider", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Primary provider breaker changed state")
		},
	})
	return a
}

func (a *Auto) Name() string { return string(ProviderAuto) }

// Secondary returns the fallback provider.
func (a *Auto) Secondary() HistoryFetcher { return a.secondary }

// FetchPrimary issues the batched primary call through the breaker. Series
// returned alongside an error are kept; every other ticker falls back.
func (a *Auto) FetchPrimary(ctx context.Context, tickers []string, period string) map[string]*model.PriceSeries {
	res, err := a.breaker.Execute(func() (interface{}, error) {
		return a.primary.FetchBatch(ctx, tickers, period)
	})
	got, _ := res.(map[string]*model.PriceSeries)
	if got == nil {
		got = map[string]*model.PriceSeries{}
	}
	if err != nil {
		a.logger.Warn().Err(err).Int("tickers", len(tickers)).Int("kept", len(got)).
			Msg("Primary batch failed, falling back")
	}
	return got
}

// FetchHistory tries the primary provider, then the secondary one.
func (a *Auto) FetchHistory(ctx context.Context, ticker, period string) (*model.PriceSeries, error) {
	res, err := a.breaker.Execute(func() (interface{}, error) {
		return a.primary.FetchHistory(ctx, ticker, period)
	})
	if err == nil {
		if series := res.(*model.PriceSeries); series.Len() > 0 {
			return series, nil
		}
	}
	series, secErr := a.secondary.FetchHistory(ctx, ticker, period)
	if secErr != nil {
		return nil, fmt.Errorf("primary: %v; secondary: %w", err, secErr)
	}
	return series, nil
}
