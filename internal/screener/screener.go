// Package screener fans a ticker set out over the price providers, measures
// each ticker's drop and keeps the ones inside the requested band.
package screener

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/calculator"
	"DipSentinel/internal/collector"
	"DipSentinel/internal/metrics"
	"DipSentinel/internal/model"
)

const (
	DefaultBatchSize   = 100
	DefaultConcurrency = 5

	progressEvery = 20

	suddenWindow    = 5
	suddenThreshold = 10.0
)

// Options controls one scan.
type Options struct {
	MinDrop      float64
	MaxDrop      float64
	LookbackDays int
	Provider     collector.Provider
	IncludeInfo  bool
	BatchSize    int
	Concurrency  int
	Period       string
	// ExcludeSudden drops tickers whose close fell more than 10% over the last 5 bars.
	ExcludeSudden bool
}

// DefaultOptions returns the 20-30% one-day band over auto mode.
func DefaultOptions() Options {
	return Options{
		MinDrop:      20,
		MaxDrop:      30,
		LookbackDays: 1,
		Provider:     collector.ProviderAuto,
		IncludeInfo:  true,
		BatchSize:    DefaultBatchSize,
		Concurrency:  DefaultConcurrency,
		Period:       collector.DefaultPeriod,
	}
}

func (o Options) normalized() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Provider == "" {
		o.Provider = collector.ProviderAuto
	}
	if o.Provider.Sequential() {
		o.Concurrency = 1
	}
	if o.Period == "" {
		o.Period = collector.DefaultPeriod
	}
	return o
}

// ScanResult is one batch of a scan plus its position in the whole run.
type ScanResult struct {
	Matches        []model.ScreenMatch `json:"stocks"`
	TickersScanned int                 `json:"tickers_scanned"`
	BatchIndex     int                 `json:"batch"`
	BatchCount     int                 `json:"batch_count"`
	HasMore        bool                `json:"has_more"`
}

// Screener runs scans against a Collector. It keeps no state between calls.
type Screener struct {
	collector *collector.Collector
	logger    zerolog.Logger
}

// New creates a Screener.
func New(c *collector.Collector) *Screener {
	return &Screener{
		collector: c,
		logger:    log.With().Str("component", "screener").Logger(),
	}
}

// BatchCount returns how many batches n tickers split into.
func BatchCount(n, batchSize int) int {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return (n + batchSize - 1) / batchSize
}

// Screen scans every batch in order and returns all matches sorted by drop.
func (s *Screener) Screen(ctx context.Context, tickers []string, opts Options) ([]model.ScreenMatch, error) {
	opts = opts.normalized()
	var matches []model.ScreenMatch
	for i := 0; i < BatchCount(len(tickers), opts.BatchSize); i++ {
		res, err := s.ScreenBatch(ctx, tickers, opts, i)
		if err != nil {
			return nil, err
		}
		matches = append(matches, res.Matches...)
	}
	sortByDrop(matches)
	return matches, nil
}

// ScreenBatch scans the batchIndex-th slice of tickers. Tickers without data
// are skipped; only an unexpected failure or cancellation returns an error.
func (s *Screener) ScreenBatch(ctx context.Context, tickers []string, opts Options, batchIndex int) (result *ScanResult, err error) {
	opts = opts.normalized()
	count := BatchCount(len(tickers), opts.BatchSize)
	if batchIndex < 0 || (count > 0 && batchIndex >= count) {
		return nil, fmt.Errorf("batch %d out of range [0,%d)", batchIndex, count)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Screening failed")
			result, err = nil, fmt.Errorf("screening failed: %v", r)
		}
	}()

	start := time.Now()
	var batch []string
	if count > 0 {
		lo := batchIndex * opts.BatchSize
		batch = tickers[lo:min(lo+opts.BatchSize, len(tickers))]
	}
	s.logger.Info().Int("tickers", len(batch)).Int("batch", batchIndex+1).Int("batches", count).
		Str("provider", opts.Provider.String()).Msg("Screening batch")

	run := &scan{screener: s, opts: opts, total: len(batch)}
	run.fetch(ctx, batch)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := run.matches
	if opts.IncludeInfo && len(matches) > 0 {
		s.enrich(ctx, matches)
	}
	sortByDrop(matches)

	metrics.ScanTickers.Add(float64(len(batch)))
	metrics.ScanMatches.Add(float64(len(matches)))
	metrics.ScanDuration.WithLabelValues(opts.Provider.String()).Observe(time.Since(start).Seconds())
	s.logger.Info().Int("matches", len(matches)).Dur("took", time.Since(start)).Msg("Screening complete")

	return &ScanResult{
		Matches:        matches,
		TickersScanned: len(batch),
		BatchIndex:     batchIndex,
		BatchCount:     count,
		HasMore:        batchIndex < count-1,
	}, nil
}

// scan is the mutable state of one batch run.
type scan struct {
	screener *Screener
	opts     Options
	total    int
	done     atomic.Int64

	mu      sync.Mutex
	matches []model.ScreenMatch
}

// consider evaluates one fetched series and records it when it matches.
func (r *scan) consider(ticker string, series *model.PriceSeries) {
	defer r.progress()
	if series == nil {
		return
	}
	m, ok := Evaluate(ticker, series, r.opts)
	if !ok {
		return
	}
	r.screener.logger.Info().Str("ticker", ticker).Float64("drop_pct", m.DropPct).Msg("Found")
	r.mu.Lock()
	r.matches = append(r.matches, m)
	r.mu.Unlock()
}

func (r *scan) progress() {
	if n := r.done.Add(1); n%progressEvery == 0 {
		r.screener.logger.Info().Int64("done", n).Int("total", r.total).Msg("Progress")
	}
}

// Evaluate applies the drop detector and band filter to one series.
func Evaluate(ticker string, series *model.PriceSeries, opts Options) (model.ScreenMatch, bool) {
	drop, ok := calculator.ComputeDrop(series.Bars, opts.LookbackDays)
	if !ok {
		return model.ScreenMatch{}, false
	}
	dropPct := calculator.Round(drop.DropPct, 2)
	if dropPct < opts.MinDrop || dropPct > opts.MaxDrop {
		return model.ScreenMatch{}, false
	}
	sudden := calculator.IsSuddenDrop(series.Bars, suddenWindow, suddenThreshold)
	if opts.ExcludeSudden && sudden {
		return model.ScreenMatch{}, false
	}

	m := model.ScreenMatch{
		Ticker:        ticker,
		Name:          ticker,
		Sector:        "N/A",
		Industry:      "N/A",
		CurrentPrice:  calculator.Round(drop.CurrentPrice, 2),
		ReferenceHigh: calculator.Round(drop.ReferenceHigh, 2),
		DropPct:       dropPct,
		Currency:      series.Currency,
		Source:        series.Source,
		SuddenDrop:    sudden,
	}
	if m.Currency == "" {
		m.Currency = "USD"
	}
	if high, low, err := calculator.Calculate52WeekRange(series.Bars); err == nil {
		m.High52w = calculator.Round(high, 2)
		m.Low52w = calculator.Round(low, 2)
	}
	return m, true
}

// enrich fetches metadata for matches only. Failures keep the values the
// series already provided.
func (s *Screener) enrich(ctx context.Context, matches []model.ScreenMatch) {
	if s.collector.Info == nil {
		return
	}
	tickers := make([]string, len(matches))
	for i, m := range matches {
		tickers[i] = m.Ticker
	}
	info, err := s.collector.Info.FetchInfo(ctx, tickers)
	if err != nil {
		s.logger.Warn().Err(err).Int("tickers", len(tickers)).Msg("Metadata enrichment failed")
	}
	for i := range matches {
		md, ok := info[matches[i].Ticker]
		if !ok {
			continue
		}
		md.High52w = calculator.Round(md.High52w, 2)
		md.Low52w = calculator.Round(md.Low52w, 2)
		matches[i].ApplyMetadata(md)
	}
}

func sortByDrop(matches []model.ScreenMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DropPct > matches[j].DropPct
	})
}
