package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/httpclient"
	"DipSentinel/internal/model"
)

const (
	// AlphaVantageBaseURL is the Alpha Vantage API host.
	AlphaVantageBaseURL = "https://www.alphavantage.co"

	// DefaultAlphaVantageDelay keeps the free tier's five requests per minute.
	DefaultAlphaVantageDelay = 12 * time.Second

	alphaVantageCompactRows = 100
)

// alphaVantageSuffixes maps universe suffixes to Alpha Vantage exchange suffixes.
var alphaVantageSuffixes = map[string]string{
	"":   "",
	"DE": "DEX",
	"L":  "LON",
}

// AlphaVantageFetcher is the tertiary provider. It needs an API key and shares
// a single throttled timeline between all callers.
type AlphaVantageFetcher struct {
	apiKey  string
	baseURL string
	client  *httpclient.Client
	gate    *Gate
	logger  zerolog.Logger
}

// AlphaVantageOption configures an AlphaVantageFetcher.
type AlphaVantageOption func(*AlphaVantageFetcher)

// WithAlphaVantageBaseURL points the fetcher at another host.
func WithAlphaVantageBaseURL(baseURL string) AlphaVantageOption {
	return func(f *AlphaVantageFetcher) { f.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithAlphaVantageGate replaces the request gate.
func WithAlphaVantageGate(g *Gate) AlphaVantageOption {
	return func(f *AlphaVantageFetcher) { f.gate = g }
}

// NewAlphaVantageFetcher creates the tertiary provider. delay is the minimum
// spacing between requests; zero selects DefaultAlphaVantageDelay.
func NewAlphaVantageFetcher(apiKey string, delay time.Duration, proxyURL string, opts ...AlphaVantageOption) *AlphaVantageFetcher {
	if delay <= 0 {
		delay = DefaultAlphaVantageDelay
	}
	f := &AlphaVantageFetcher{
		apiKey:  apiKey,
		baseURL: AlphaVantageBaseURL,
		// No retries: a rejected request has already spent quota.
		client: httpclient.New(httpclient.Options{ProxyURL: proxyURL}),
		gate:   NewGate(delay),
		logger: log.With().Str("component", "alphavantage_fetcher").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *AlphaVantageFetcher) Name() string { return string(ProviderAlphaVantage) }

// Enabled reports whether an API key is configured.
func (f *AlphaVantageFetcher) Enabled() bool { return f.apiKey != "" }

type alphaVantageDaily struct {
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	ErrorMessage string                       `json:"Error Message"`
	Series       map[string]map[string]string `json:"Time Series (Daily)"`
}

func alphaVantageSymbol(ticker string) (string, bool) {
	code, suffix := splitSuffix(ticker)
	avSuffix, ok := alphaVantageSuffixes[suffix]
	if !ok {
		return "", false
	}
	if avSuffix == "" {
		return code, true
	}
	return code + "." + avSuffix, true
}

// FetchHistory waits for the gate, then fetches TIME_SERIES_DAILY.
func (f *AlphaVantageFetcher) FetchHistory(ctx context.Context, ticker, period string) (*model.PriceSeries, error) {
	if !f.Enabled() {
		return nil, ErrMissingAPIKey
	}
	symbol, ok := alphaVantageSymbol(ticker)
	if !ok {
		return nil, fmt.Errorf("alphavantage %s: %w", ticker, ErrUnsupportedSymbol)
	}
	rows := ParsePeriod(period)
	outputSize := "compact"
	if rows > alphaVantageCompactRows {
		outputSize = "full"
	}

	if err := f.gate.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", outputSize)
	f.logger.Debug().Str("symbol", symbol).Str("outputsize", outputSize).Msg("Fetching daily series")
	params.Set("apikey", f.apiKey)

	body, err := f.client.Get(ctx, f.baseURL+"/query?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", ticker, err)
	}

	var data alphaVantageDaily
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("alphavantage decode %s: %w", ticker, err)
	}
	switch {
	case data.Note != "" || data.Information != "":
		return nil, fmt.Errorf("alphavantage %s: %s: %w", ticker, data.Note+data.Information, ErrRateLimited)
	case data.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage %s: %s: %w", ticker, data.ErrorMessage, ErrNoData)
	case len(data.Series) == 0:
		return nil, ErrNoData
	}

	bars := make([]model.OHLCV, 0, len(data.Series))
	for day, fields := range data.Series {
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   t,
			Open:   parseField(fields["1. open"]),
			High:   parseField(fields["2. high"]),
			Low:    parseField(fields["3. low"]),
			Close:  parseField(fields["4. close"]),
			Volume: parseField(fields["5. volume"]),
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > rows {
		bars = bars[len(bars)-rows:]
	}
	return &model.PriceSeries{
		Symbol:    ticker,
		Source:    string(ProviderAlphaVantage),
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

func parseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
