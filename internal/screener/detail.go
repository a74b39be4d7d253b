package screener

import (
	"context"
	"errors"
	"strings"

	"DipSentinel/internal/calculator"
	"DipSentinel/internal/collector"
	"DipSentinel/internal/model"
)

// HistoryPoints is the length of the chart series in a detail record.
const HistoryPoints = 90

// ErrNotFound means no provider had a usable series for the ticker.
var ErrNotFound = errors.New("stock not found")

// Detail builds the per-ticker record: price levels, moving averages, RSI,
// best-effort metadata and the trailing price history.
func (s *Screener) Detail(ctx context.Context, ticker string, provider collector.Provider) (*model.StockDetail, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	series := s.collector.FetchHistory(ctx, ticker, collector.DefaultPeriod, provider)
	if series == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	bars := calculator.UsableBars(series.Bars)
	if len(bars) == 0 {
		return nil, ErrNotFound
	}

	d := &model.StockDetail{
		Ticker:       ticker,
		Name:         ticker,
		Sector:       "N/A",
		Industry:     "N/A",
		Currency:     series.Currency,
		CurrentPrice: calculator.Round(bars[len(bars)-1].Close, 2),
		MA50:         calculator.RoundPtr(calculator.MovingAverage(bars, 50), 2),
		MA200:        calculator.RoundPtr(calculator.MovingAverage(bars, 200), 2),
		Source:       series.Source,
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if high, low, err := calculator.Calculate52WeekRange(bars); err == nil {
		d.High52w = calculator.Round(high, 2)
		d.Low52w = calculator.Round(low, 2)
	}
	if rsi, ok := calculator.CalculateRSI(bars, 14); ok {
		d.RSI14 = calculator.RoundPtr(&rsi, 2)
	}

	tail := bars
	if len(tail) > HistoryPoints {
		tail = tail[len(tail)-HistoryPoints:]
	}
	d.PriceHistory = make([]model.PricePoint, len(tail))
	for i, b := range tail {
		d.PriceHistory[i] = model.PricePoint{Date: b.Time.Format("2006-01-02"), Price: calculator.Round(b.Close, 2)}
	}

	if s.collector.Info != nil {
		info, err := s.collector.Info.FetchInfo(ctx, []string{ticker})
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Metadata fetch failed")
		}
		if md, ok := info[ticker]; ok {
			applyDetailMetadata(d, md)
		}
		if pf, ok := s.collector.Info.(collector.ProfileFetcher); ok {
			p, err := pf.FetchProfile(ctx, ticker)
			switch {
			case err == nil:
				applyProfile(d, p)
			case !errors.Is(err, collector.ErrNoData):
				s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Profile fetch failed")
			}
		}
	}
	return d, nil
}

func applyDetailMetadata(d *model.StockDetail, md model.Metadata) {
	if md.Name != "" {
		d.Name = md.Name
	}
	if md.Sector != "" {
		d.Sector = md.Sector
	}
	if md.Industry != "" {
		d.Industry = md.Industry
	}
	if md.Currency != "" {
		d.Currency = md.Currency
	}
	if md.MarketCap > 0 {
		d.MarketCap = md.MarketCap
	}
	if md.PERatio != nil {
		d.PERatio = calculator.RoundPtr(md.PERatio, 2)
	}
	if md.DividendYield != nil {
		d.DividendYield = md.DividendYield
	}
	d.ForwardPE = calculator.RoundPtr(md.ForwardPE, 2)
	d.PriceToBook = calculator.RoundPtr(md.PriceToBook, 2)
	d.EPS = calculator.RoundPtr(md.EPS, 2)
}

// applyProfile fills the fundamentals. Quote values already present win.
func applyProfile(d *model.StockDetail, p *model.Profile) {
	if p.Description != "" {
		desc := p.Description
		d.Description = &desc
	}
	d.Beta = calculator.RoundPtr(p.Beta, 2)
	d.Revenue = p.Revenue
	d.ProfitMargin = calculator.RoundPtr(p.ProfitMargin, 4)
	d.DebtToEquity = calculator.RoundPtr(p.DebtToEquity, 2)
	if d.ForwardPE == nil {
		d.ForwardPE = calculator.RoundPtr(p.ForwardPE, 2)
	}
	if d.PriceToBook == nil {
		d.PriceToBook = calculator.RoundPtr(p.PriceToBook, 2)
	}
	if d.EPS == nil {
		d.EPS = calculator.RoundPtr(p.EPS, 2)
	}
}
