package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/httpclient"
	"DipSentinel/internal/model"
)

const (
	// YahooBaseURL is the public Yahoo Finance query host.
	YahooBaseURL = "https://query1.finance.yahoo.com"

	// MaxYahooBatch is the largest symbol list sent in one quote call.
	MaxYahooBatch = 100

	// DefaultYahooWorkers bounds the chart calls in flight during one batch.
	DefaultYahooWorkers = 8
)

// YahooFetcher is the primary provider: chart history, quote metadata and
// company profiles from the Yahoo Finance public API.
type YahooFetcher struct {
	baseURL string
	client  *httpclient.Client
	workers int
	logger  zerolog.Logger
}

// YahooOption configures a YahooFetcher.
type YahooOption func(*YahooFetcher)

// WithYahooBaseURL points the fetcher at another host (tests, mirrors).
func WithYahooBaseURL(baseURL string) YahooOption {
	return func(f *YahooFetcher) { f.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithYahooClient replaces the HTTP client.
func WithYahooClient(c *httpclient.Client) YahooOption {
	return func(f *YahooFetcher) { f.client = c }
}

// WithYahooWorkers sets how many chart calls one batch runs at once.
func WithYahooWorkers(n int) YahooOption {
	return func(f *YahooFetcher) {
		if n > 0 {
			f.workers = n
		}
	}
}

// NewYahooFetcher creates the primary provider.
func NewYahooFetcher(proxyURL string, opts ...YahooOption) *YahooFetcher {
	f := &YahooFetcher{
		baseURL: YahooBaseURL,
		client:  httpclient.New(httpclient.Options{ProxyURL: proxyURL, MaxRetries: 2}),
		workers: DefaultYahooWorkers,
		logger:  log.With().Str("component", "yahoo_fetcher").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *YahooFetcher) Name() string { return string(ProviderYahoo) }

// yahooChartResult is one symbol's chart payload. Price arrays hold nulls on
// holidays and halted sessions.
type yahooChartResult struct {
	Meta struct {
		Currency         string  `json:"currency"`
		Symbol           string  `json:"symbol"`
		LongName         string  `json:"longName"`
		ShortName        string  `json:"shortName"`
		FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChart struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                      string   `json:"symbol"`
			ShortName                   string   `json:"shortName"`
			LongName                    string   `json:"longName"`
			Sector                      string   `json:"sector"`
			Industry                    string   `json:"industry"`
			Currency                    string   `json:"currency"`
			MarketCap                   int64    `json:"marketCap"`
			AverageDailyVolume3Month    int64    `json:"averageDailyVolume3Month"`
			RegularMarketVolume         int64    `json:"regularMarketVolume"`
			TrailingPE                  *float64 `json:"trailingPE"`
			ForwardPE                   *float64 `json:"forwardPE"`
			PriceToBook                 *float64 `json:"priceToBook"`
			EPS                         *float64 `json:"epsTrailingTwelveMonths"`
			DividendYield               *float64 `json:"dividendYield"`
			TrailingAnnualDividendYield *float64 `json:"trailingAnnualDividendYield"`
			FiftyTwoWeekHigh            float64  `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow             float64  `json:"fiftyTwoWeekLow"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteResponse"`
}

// yahooRaw is a quoteSummary number. Fields Yahoo does not know come back as
// an empty object.
type yahooRaw struct {
	Raw *float64 `json:"raw"`
}

// known returns the value, or nil when it is missing or zero.
func (v yahooRaw) known() *float64 {
	if v.Raw == nil || *v.Raw == 0 || math.IsNaN(*v.Raw) {
		return nil
	}
	x := *v.Raw
	return &x
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryProfile struct {
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"summaryProfile"`
			FinancialData struct {
				TotalRevenue  yahooRaw `json:"totalRevenue"`
				ProfitMargins yahooRaw `json:"profitMargins"`
				DebtToEquity  yahooRaw `json:"debtToEquity"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				Beta        yahooRaw `json:"beta"`
				ForwardPE   yahooRaw `json:"forwardPE"`
				PriceToBook yahooRaw `json:"priceToBook"`
				TrailingEps yahooRaw `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

func valueAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return math.NaN()
	}
	return *values[i]
}

// toSeries converts a chart payload into an ascending series trimmed to rows.
func (r *yahooChartResult) toSeries(ticker string, rows int) (*model.PriceSeries, error) {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}
	quote := r.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		b := model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   valueAt(quote.Open, i),
			High:   valueAt(quote.High, i),
			Low:    valueAt(quote.Low, i),
			Close:  valueAt(quote.Close, i),
			Volume: valueAt(quote.Volume, i),
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
	if rows > 0 && len(bars) > rows {
		bars = bars[len(bars)-rows:]
	}
	return &model.PriceSeries{
		Symbol:    ticker,
		Source:    string(ProviderYahoo),
		Currency:  r.Meta.Currency,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// FetchHistory fetches one ticker's chart.
func (f *YahooFetcher) FetchHistory(ctx context.Context, ticker, period string) (*model.PriceSeries, error) {
	rows := ParsePeriod(period)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.baseURL, url.PathEscape(ticker), yahooRange(rows))
	f.logger.Debug().Str("url", u).Msg("Fetching chart")

	body, err := f.client.Get(ctx, u)
	if err != nil {
		if httpclient.IsStatus(err, 404) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode %s: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s: %w", ticker, chart.Chart.Error.Description, ErrNoData)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, ErrNoData
	}
	return chart.Chart.Result[0].toSeries(ticker, rows)
}

// FetchBatch fetches the chart of every ticker through a bounded pool of
// workers. Tickers without data are missing from the result. An error is
// returned only when nothing succeeded and some call failed for a reason other
// than missing data.
func (f *YahooFetcher) FetchBatch(ctx context.Context, tickers []string, period string) (map[string]*model.PriceSeries, error) {
	var (
		mu       sync.Mutex
		out      = make(map[string]*model.PriceSeries, len(tickers))
		firstErr error
		failed   int
	)
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < min(f.workers, len(tickers)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				series, err := f.FetchHistory(ctx, t, period)
				mu.Lock()
				switch {
				case err == nil:
					out[t] = series
				case !errors.Is(err, ErrNoData):
					failed++
					if firstErr == nil {
						firstErr = err
					}
				}
				mu.Unlock()
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

	if err := ctx.Err(); err != nil {
		return out, err
	}
	f.logger.Debug().Int("tickers", len(tickers)).Int("found", len(out)).Int("failed", failed).Msg("Chart batch done")
	if len(out) == 0 && firstErr != nil {
		return out, fmt.Errorf("yahoo batch: %d of %d failed: %w", failed, len(tickers), firstErr)
	}
	return out, nil
}

// FetchInfo fetches quote metadata for up to MaxYahooBatch tickers per call.
func (f *YahooFetcher) FetchInfo(ctx context.Context, tickers []string) (map[string]model.Metadata, error) {
	out := make(map[string]model.Metadata, len(tickers))
	for start := 0; start < len(tickers); start += MaxYahooBatch {
		end := min(start+MaxYahooBatch, len(tickers))
		u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
			f.baseURL, url.QueryEscape(strings.Join(tickers[start:end], ",")))

		body, err := f.client.Get(ctx, u)
		if err != nil {
			return out, fmt.Errorf("yahoo quote: %w", err)
		}
		var quote yahooQuote
		if err := json.Unmarshal(body, &quote); err != nil {
			return out, fmt.Errorf("yahoo quote decode: %w", err)
		}
		for _, q := range quote.QuoteResponse.Result {
			md := model.Metadata{
				Name:          q.ShortName,
				Sector:        q.Sector,
				Industry:      q.Industry,
				Currency:      q.Currency,
				MarketCap:     q.MarketCap,
				Volume:        q.AverageDailyVolume3Month,
				PERatio:       q.TrailingPE,
				ForwardPE:     q.ForwardPE,
				PriceToBook:   q.PriceToBook,
				EPS:           q.EPS,
				DividendYield: q.DividendYield,
				High52w:       q.FiftyTwoWeekHigh,
				Low52w:        q.FiftyTwoWeekLow,
			}
			if md.Name == "" {
				md.Name = q.LongName
			}
			if md.Volume == 0 {
				md.Volume = q.RegularMarketVolume
			}
			if md.DividendYield == nil {
				md.DividendYield = q.TrailingAnnualDividendYield
			}
			out[q.Symbol] = md
		}
	}
	return out, nil
}

// FetchProfile fetches the company description and fundamentals of one ticker.
func (f *YahooFetcher) FetchProfile(ctx context.Context, ticker string) (*model.Profile, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryProfile,financialData,defaultKeyStatistics",
		f.baseURL, url.PathEscape(ticker))

	body, err := f.client.Get(ctx, u)
	if err != nil {
		if httpclient.IsStatus(err, 404) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("yahoo profile %s: %w", ticker, err)
	}
	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo profile decode %s: %w", ticker, err)
	}
	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		return nil, ErrNoData
	}

	r := summary.QuoteSummary.Result[0]
	p := &model.Profile{
		Description:  r.SummaryProfile.LongBusinessSummary,
		Beta:         r.DefaultKeyStatistics.Beta.known(),
		ForwardPE:    r.DefaultKeyStatistics.ForwardPE.known(),
		PriceToBook:  r.DefaultKeyStatistics.PriceToBook.known(),
		EPS:          r.DefaultKeyStatistics.TrailingEps.known(),
		ProfitMargin: r.FinancialData.ProfitMargins.known(),
		DebtToEquity: r.FinancialData.DebtToEquity.known(),
	}
	if rev := r.FinancialData.TotalRevenue.known(); rev != nil {
		n := int64(*rev)
		p.Revenue = &n
	}
	return p, nil
}
