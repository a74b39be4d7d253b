package collector

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
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

// StooqBaseURL is the Stooq CSV download host.
const StooqBaseURL = "https://stooq.com"

var stooqColumns = []string{"date", "open", "high", "low", "close"}

// StooqFetcher is the secondary provider: daily CSV per symbol, prices only.
type StooqFetcher struct {
	baseURL string
	client  *httpclient.Client
	logger  zerolog.Logger
}

// StooqOption configures a StooqFetcher.
type StooqOption func(*StooqFetcher)

// WithStooqBaseURL points the fetcher at another host.
func WithStooqBaseURL(baseURL string) StooqOption {
	return func(f *StooqFetcher) { f.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithStooqClient replaces the HTTP client.
func WithStooqClient(c *httpclient.Client) StooqOption {
	return func(f *StooqFetcher) { f.client = c }
}

// NewStooqFetcher creates the secondary provider.
func NewStooqFetcher(proxyURL string, opts ...StooqOption) *StooqFetcher {
	f := &StooqFetcher{
		baseURL: StooqBaseURL,
		client:  httpclient.New(httpclient.Options{ProxyURL: proxyURL, MaxRetries: 2}),
		logger:  log.With().Str("component", "stooq_fetcher").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *StooqFetcher) Name() string { return string(ProviderStooq) }

// FetchHistory downloads the daily CSV of one ticker. Tickers on exchanges
// Stooq does not list yield ErrUnsupportedSymbol without any request.
func (f *StooqFetcher) FetchHistory(ctx context.Context, ticker, period string) (*model.PriceSeries, error) {
	symbol, ok := ToStooq(ticker)
	if !ok {
		return nil, fmt.Errorf("stooq %s: %w", ticker, ErrUnsupportedSymbol)
	}
	u := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", f.baseURL, url.QueryEscape(symbol))
	f.logger.Debug().Str("url", u).Msg("Fetching csv")

	body, err := f.client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("stooq %s: %w", ticker, err)
	}
	bars, err := parseStooqCSV(body)
	if err != nil {
		return nil, fmt.Errorf("stooq %s: %w", ticker, err)
	}
	if rows := ParsePeriod(period); len(bars) > rows {
		bars = bars[len(bars)-rows:]
	}
	return &model.PriceSeries{
		Symbol:    ticker,
		Source:    string(ProviderStooq),
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// parseStooqCSV reads "Date,Open,High,Low,Close[,Volume]" rows. Missing
// columns or an all-empty body are ErrNoData; unparsable cells become NaN.
func parseStooqCSV(body []byte) ([]model.OHLCV, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.EqualFold(trimmed, []byte("No data")) {
		return nil, ErrNoData
	}

	r := csv.NewReader(bytes.NewReader(trimmed))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, ErrNoData
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range stooqColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", col, ErrNoData)
		}
	}
	volIdx, hasVolume := idx["volume"]

	var bars []model.OHLCV
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		day, err := time.Parse("2006-01-02", cell(rec, idx["date"]))
		if err != nil {
			continue
		}
		b := model.OHLCV{
			Time:   day,
			Open:   parseCell(rec, idx["open"]),
			High:   parseCell(rec, idx["high"]),
			Low:    parseCell(rec, idx["low"]),
			Close:  parseCell(rec, idx["close"]),
			Volume: math.NaN(),
		}
		if hasVolume {
			b.Volume = parseCell(rec, volIdx)
		}
		if math.IsNaN(b.Close) && math.IsNaN(b.High) {
			continue
		}
		bars = append(bars, b)
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseCell(rec []string, i int) float64 {
	v, err := strconv.ParseFloat(cell(rec, i), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
