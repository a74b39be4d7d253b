// Package markets holds the static ticker universe of the supported indices.
package markets

import "sort"

// Market is one index and its constituents.
type Market struct {
	Key      string
	Name     string
	Currency string
	Tickers  []string
}

// Info is the public summary of a market.
type Info struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Currency string `json:"currency"`
}

var all = []Market{
	{Key: "sp500", Name: "S&P 500 (USA)", Currency: "USD", Tickers: sp500Tickers},
	{Key: "nasdaq", Name: "NASDAQ 100 (USA)", Currency: "USD", Tickers: nasdaq100Tickers},
	{Key: "dax", Name: "DAX 40 (Germany)", Currency: "EUR", Tickers: dax40Tickers},
	{Key: "cac", Name: "CAC 40 (France)", Currency: "EUR", Tickers: cac40Tickers},
	{Key: "ftse", Name: "FTSE 100 (UK)", Currency: "GBP", Tickers: ftse100Tickers},
	{Key: "mib", Name: "FTSE MIB (Italy)", Currency: "EUR", Tickers: ftseMIBTickers},
	{Key: "nikkei", Name: "Nikkei 225 (Japan)", Currency: "JPY", Tickers: nikkeiTickers},
	{Key: "hangseng", Name: "Hang Seng (Hong Kong)", Currency: "HKD", Tickers: hangSengTickers},
}

// All returns every market in display order.
func All() []Market {
	return all
}

// Get returns the market with key.
func Get(key string) (Market, bool) {
	for _, m := range all {
		if m.Key == key {
			return m, true
		}
	}
	return Market{}, false
}

// Summary maps market keys to their public summary. Count is the number of
// distinct tickers.
func Summary() map[string]Info {
	out := make(map[string]Info, len(all))
	for _, m := range all {
		out[m.Key] = Info{Name: m.Name, Count: len(dedupe(m.Tickers)), Currency: m.Currency}
	}
	return out
}

// TickersByMarkets returns the distinct tickers of the given markets, sorted.
// Unknown keys are ignored.
func TickersByMarkets(keys []string) []string {
	var tickers []string
	for _, k := range keys {
		if m, ok := Get(k); ok {
			tickers = append(tickers, m.Tickers...)
		}
	}
	return dedupe(tickers)
}

func dedupe(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
