package collector

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/metrics"
	"DipSentinel/internal/model"
)

// Options configures the provider set.
type Options struct {
	ProxyURL          string
	AlphaVantageKey   string
	AlphaVantageDelay time.Duration
}

// Collector dispatches history requests to the selected provider and turns
// every upstream failure into an absent series.
type Collector struct {
	Primary   BatchFetcher
	Secondary HistoryFetcher
	Tertiary  HistoryFetcher
	Info      InfoFetcher
	Auto      *Auto

	logger      zerolog.Logger
	missingOnce sync.Once
}

// New creates a Collector over Yahoo, Stooq and Alpha Vantage.
func New(opts Options) *Collector {
	yahoo := NewYahooFetcher(opts.ProxyURL)
	stooq := NewStooqFetcher(opts.ProxyURL)
	av := NewAlphaVantageFetcher(opts.AlphaVantageKey, opts.AlphaVantageDelay, opts.ProxyURL)
	return NewWithFetchers(yahoo, stooq, av, yahoo)
}

// NewWithFetchers wires explicit providers.
func NewWithFetchers(primary BatchFetcher, secondary, tertiary HistoryFetcher, info InfoFetcher) *Collector {
	return &Collector{
		Primary:   primary,
		Secondary: secondary,
		Tertiary:  tertiary,
		Info:      info,
		Auto:      NewAuto(primary, secondary),
		logger:    log.With().Str("component", "collector").Logger(),
	}
}

// Resolve parses a provider name, warning and falling back to auto when unknown.
func (c *Collector) Resolve(name string) Provider {
	p, ok := ParseProvider(name)
	if !ok {
		c.logger.Warn().Str("provider", name).Msg("Unknown provider, using auto")
	}
	return p
}

// Fetcher returns the HistoryFetcher behind p.
func (c *Collector) Fetcher(p Provider) HistoryFetcher {
	switch p {
	case ProviderYahoo:
		return c.Primary
	case ProviderStooq:
		return c.Secondary
	case ProviderAlphaVantage:
		return c.Tertiary
	default:
		return c.Auto
	}
}

// FetchHistory returns the ticker's series, or nil when no provider path had
// usable data. It never returns an error.
func (c *Collector) FetchHistory(ctx context.Context, ticker, period string, p Provider) *model.PriceSeries {
	f := c.Fetcher(p)
	return c.Absorb(f, ticker)(f.FetchHistory(ctx, ticker, period))
}

// Absorb returns a func that records the outcome of one fetch from f and
// converts failures into nil.
func (c *Collector) Absorb(f HistoryFetcher, ticker string) func(*model.PriceSeries, error) *model.PriceSeries {
	return func(series *model.PriceSeries, err error) *model.PriceSeries {
		if err == nil && !hasUsableBar(series) {
			err = ErrNoData
		}
		outcome := Outcome(err)
		metrics.ProviderRequests.WithLabelValues(f.Name(), outcome).Inc()

		switch {
		case err == nil:
			return series
		case errors.Is(err, ErrMissingAPIKey):
			c.missingOnce.Do(func() {
				c.logger.Warn().Str("provider", f.Name()).Msg("API key not configured, provider disabled")
			})
		case errors.Is(err, ErrUnsupportedSymbol), errors.Is(err, ErrNoData):
			c.logger.Debug().Str("provider", f.Name()).Str("ticker", ticker).Str("outcome", outcome).Msg("No series")
		default:
			c.logger.Warn().Err(err).Str("provider", f.Name()).Str("ticker", ticker).Msg("History fetch failed")
		}
		return nil
	}
}

// Outcome classifies a fetch error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoData):
		return "no_data"
	case errors.Is(err, ErrUnsupportedSymbol):
		return "unsupported"
	case errors.Is(err, ErrMissingAPIKey):
		return "disabled"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

func hasUsableBar(s *model.PriceSeries) bool {
	if s == nil {
		return false
	}
	for _, b := range s.Bars {
		if !math.IsNaN(b.Close) && !math.IsNaN(b.High) {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer for log fields.
func (p Provider) String() string { return string(p) }
