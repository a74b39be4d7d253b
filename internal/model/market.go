package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the daily bars of one ticker, ascending by date.
type PriceSeries struct {
	Symbol    string
	Source    string
	Currency  string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Last returns the most recent bar.
func (s *PriceSeries) Last() (OHLCV, bool) {
	if s.Len() == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Tail returns the most recent n bars.
func (s *PriceSeries) Tail(n int) []OHLCV {
	if s.Len() <= n {
		return s.Bars
	}
	return s.Bars[len(s.Bars)-n:]
}
