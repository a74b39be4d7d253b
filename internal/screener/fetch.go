package screener

import (
	"context"
	"sync"

	"DipSentinel/internal/collector"
	"DipSentinel/internal/metrics"
	"DipSentinel/internal/model"
)

// fetch retrieves the batch's series with the provider's natural access
// pattern and feeds each one to consider. Every ticker is considered once.
func (r *scan) fetch(ctx context.Context, tickers []string) {
	c := r.screener.collector
	switch r.opts.Provider {
	case collector.ProviderYahoo:
		got, err := c.Primary.FetchBatch(ctx, tickers, r.opts.Period)
		if err != nil {
			r.screener.logger.Warn().Err(err).Int("tickers", len(tickers)).Msg("Batch fetch failed")
		}
		for _, t := range tickers {
			r.consider(t, c.Absorb(c.Primary, t)(lookup(got, t)))
		}

	case collector.ProviderAuto:
		got := c.Auto.FetchPrimary(ctx, tickers, r.opts.Period)
		var missing []string
		for _, t := range tickers {
			if s, ok := got[t]; ok && s.Len() > 0 {
				r.consider(t, s)
				continue
			}
			missing = append(missing, t)
		}
		if len(missing) == 0 {
			return
		}
		metrics.FallbackTickers.Add(float64(len(missing)))
		r.screener.logger.Debug().Int("tickers", len(missing)).Msg("Falling back to secondary provider")
		r.each(ctx, missing, c.Auto.Secondary())

	default:
		r.each(ctx, tickers, c.Fetcher(r.opts.Provider))
	}
}

// each fetches tickers one by one through a pool of opts.Concurrency workers.
func (r *scan) each(ctx context.Context, tickers []string, f collector.HistoryFetcher) {
	c := r.screener.collector
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < min(r.opts.Concurrency, len(tickers)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				r.safely(t, func() {
					r.consider(t, c.Absorb(f, t)(f.FetchHistory(ctx, t, r.opts.Period)))
				})
			}
		}()
	}

	for _, t := range tickers {
		if ctx.Err() != nil {
			break
		}
		jobs <- t
	}
	close(jobs)
	wg.Wait()
}

// safely runs fn and logs a panic instead of letting it kill the scan.
func (r *scan) safely(ticker string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.screener.logger.Warn().Str("ticker", ticker).Interface("panic", p).Msg("Error processing ticker")
		}
	}()
	fn()
}

func lookup(got map[string]*model.PriceSeries, ticker string) (*model.PriceSeries, error) {
	if s, ok := got[ticker]; ok {
		return s, nil
	}
	return nil, collector.ErrNoData
}
