package collector

import (
	"context"
	"sync"
	"time"

	"DipSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Tickers missing from Series yield ErrNoData unless Errs names them.
type MockFetcher struct {
	Label    string
	Series   map[string]*model.PriceSeries
	Info     map[string]model.Metadata
	Profiles map[string]*model.Profile
	Errs     map[string]error
	// BatchErr fails every FetchBatch call when set. The first BatchKeep
	// tickers still come back with their series.
	BatchErr  error
	BatchKeep int
	// Delay holds every FetchHistory call open, so overlapping calls show in Peak.
	Delay time.Duration

	mu       sync.Mutex
	Calls    []string
	inFlight int
	peak     int
}

func (m *MockFetcher) Name() string {
	if m.Label == "" {
		return "mock"
	}
	return m.Label
}

func (m *MockFetcher) FetchHistory(_ context.Context, ticker, _ string) (*model.PriceSeries, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ticker)
	m.inFlight++
	m.peak = max(m.peak, m.inFlight)
	m.mu.Unlock()

	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()

	if err := m.Errs[ticker]; err != nil {
		return nil, err
	}
	s, ok := m.Series[ticker]
	if !ok {
		return nil, ErrNoData
	}
	return s, nil
}

func (m *MockFetcher) FetchBatch(_ context.Context, tickers []string, _ string) (map[string]*model.PriceSeries, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, tickers...)
	m.mu.Unlock()
	if m.BatchErr != nil {
		if m.BatchKeep == 0 {
			return nil, m.BatchErr
		}
		return m.collect(tickers[:min(m.BatchKeep, len(tickers))]), m.BatchErr
	}
	return m.collect(tickers), nil
}

func (m *MockFetcher) collect(tickers []string) map[string]*model.PriceSeries {
	out := make(map[string]*model.PriceSeries)
	for _, t := range tickers {
		if s, ok := m.Series[t]; ok && m.Errs[t] == nil {
			out[t] = s
		}
	}
	return out
}

func (m *MockFetcher) FetchInfo(_ context.Context, tickers []string) (map[string]model.Metadata, error) {
	out := make(map[string]model.Metadata)
	for _, t := range tickers {
		if md, ok := m.Info[t]; ok {
			out[t] = md
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchProfile(_ context.Context, ticker string) (*model.Profile, error) {
	p, ok := m.Profiles[ticker]
	if !ok {
		return nil, ErrNoData
	}
	return p, nil
}

// Peak returns the largest number of FetchHistory calls seen in flight at once.
func (m *MockFetcher) Peak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}

// CallCount returns how many times ticker was requested.
func (m *MockFetcher) CallCount(ticker string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == ticker {
			n++
		}
	}
	return n
}

// MockSeries builds an ascending daily series from closes, with highs equal
// to closes.
func MockSeries(symbol, source string, closes ...float64) *model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000000,
		}
	}
	return &model.PriceSeries{Symbol: symbol, Source: source, Currency: "USD", Bars: bars}
}
