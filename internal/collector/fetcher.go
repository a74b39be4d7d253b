package collector

import (
	"context"
	"errors"
	"strings"

	"DipSentinel/internal/model"
)

var (
	// ErrNoData means the provider answered but had no usable series.
	ErrNoData = errors.New("no data")
	// ErrUnsupportedSymbol means the provider cannot represent the ticker.
	ErrUnsupportedSymbol = errors.New("unsupported symbol")
	// ErrMissingAPIKey means the provider is disabled for lack of credentials.
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrRateLimited means the upstream rejected the request for exceeding its quota.
	ErrRateLimited = errors.New("rate limited")
)

// HistoryFetcher retrieves the daily history of a single ticker.
type HistoryFetcher interface {
	Name() string
	FetchHistory(ctx context.Context, ticker, period string) (*model.PriceSeries, error)
}

// BatchFetcher retrieves the daily history of many tickers in one upstream call.
// Tickers without data are simply missing from the result.
type BatchFetcher interface {
	HistoryFetcher
	FetchBatch(ctx context.Context, tickers []string, period string) (map[string]*model.PriceSeries, error)
}

// InfoFetcher retrieves descriptive metadata for tickers.
type InfoFetcher interface {
	FetchInfo(ctx context.Context, tickers []string) (map[string]model.Metadata, error)
}

// ProfileFetcher is implemented by providers that know a company's
// description and fundamentals.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, ticker string) (*model.Profile, error)
}

// Provider selects the upstream source of price history.
type Provider string

const (
	ProviderYahoo        Provider = "yahoo"
	ProviderStooq        Provider = "stooq"
	ProviderAlphaVantage Provider = "alphavantage"
	ProviderAuto         Provider = "auto"
)

// ParseProvider maps a user supplied name to a Provider. Empty selects auto.
// Unknown names also yield auto with ok=false so the caller can warn.
func ParseProvider(name string) (p Provider, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ProviderAuto, true
	case "yahoo", "yfinance", "primary":
		return ProviderYahoo, true
	case "stooq", "secondary":
		return ProviderStooq, true
	case "alphavantage", "alpha_vantage", "tertiary":
		return ProviderAlphaVantage, true
	default:
		return ProviderAuto, false
	}
}

// Sequential reports whether requests to p must share one throttled timeline.
func (p Provider) Sequential() bool {
	return p == ProviderAlphaVantage
}
