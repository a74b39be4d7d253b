package collector

import "strings"

// stooqSuffixes maps exchange suffixes of the ticker universe to Stooq suffixes.
// Tickers without a suffix are US listings.
var stooqSuffixes = map[string]string{
	"":   "us",
	"DE": "de",
	"L":  "uk",
	"T":  "jp",
	"HK": "hk",
}

// tickerSuffixes is the reverse of stooqSuffixes.
var tickerSuffixes = map[string]string{
	"us": "",
	"de": "DE",
	"uk": "L",
	"jp": "T",
	"hk": "HK",
}

// splitSuffix splits "SAP.DE" into ("SAP", "DE"). Class shares such as "BRK-B"
// keep their dash.
func splitSuffix(ticker string) (code, suffix string) {
	i := strings.LastIndex(ticker, ".")
	if i <= 0 || i == len(ticker)-1 {
		return ticker, ""
	}
	return ticker[:i], strings.ToUpper(ticker[i+1:])
}

// ToStooq maps a ticker to its Stooq symbol. ok is false when Stooq does not
// cover the ticker's exchange.
func ToStooq(ticker string) (symbol string, ok bool) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return "", false
	}
	code, suffix := splitSuffix(ticker)
	stooqSuffix, ok := stooqSuffixes[suffix]
	if !ok {
		return "", false
	}
	if suffix == "HK" {
		code = strings.TrimLeft(code, "0")
		if code == "" {
			return "", false
		}
	}
	return strings.ToLower(code) + "." + stooqSuffix, true
}

// FromStooq maps a Stooq symbol back to the ticker convention of the universe.
// Hong Kong codes are zero-padded to four digits.
func FromStooq(symbol string) (ticker string, ok bool) {
	i := strings.LastIndex(symbol, ".")
	if i <= 0 || i == len(symbol)-1 {
		return "", false
	}
	code := strings.ToUpper(symbol[:i])
	suffix, ok := tickerSuffixes[strings.ToLower(symbol[i+1:])]
	if !ok {
		return "", false
	}
	if suffix == "" {
		return code, true
	}
	if suffix == "HK" && len(code) < 4 {
		code = strings.Repeat("0", 4-len(code)) + code
	}
	return code + "." + suffix, true
}
