package model

// Metadata is the descriptive information a provider may know about a ticker.
// Zero values mean "unknown".
type Metadata struct {
	Name          string   `json:"name"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	Currency      string   `json:"currency"`
	MarketCap     int64    `json:"market_cap"`
	Volume        int64    `json:"volume"`
	PERatio       *float64 `json:"pe_ratio"`
	ForwardPE     *float64 `json:"forward_pe"`
	PriceToBook   *float64 `json:"pb_ratio"`
	EPS           *float64 `json:"eps"`
	DividendYield *float64 `json:"dividend_yield"`
	High52w       float64  `json:"high_52w"`
	Low52w        float64  `json:"low_52w"`
}

// Profile is a company's description and fundamentals. Nil means unknown.
type Profile struct {
	Description  string
	Beta         *float64
	ForwardPE    *float64
	PriceToBook  *float64
	EPS          *float64
	Revenue      *int64
	ProfitMargin *float64
	DebtToEquity *float64
}

// ScreenMatch is a ticker whose drop falls inside the requested band.
type ScreenMatch struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	CurrentPrice  float64  `json:"current_price"`
	ReferenceHigh float64  `json:"reference_high"`
	High52w       float64  `json:"high_52w"`
	Low52w        float64  `json:"low_52w"`
	DropPct       float64  `json:"drop_pct"`
	Currency      string   `json:"currency"`
	MarketCap     int64    `json:"market_cap"`
	Volume        int64    `json:"volume"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	Source        string   `json:"source"`
	SuddenDrop    bool     `json:"sudden_drop"`
}

// ApplyMetadata overwrites fields that the metadata actually knows about.
// Unknown metadata fields leave the match untouched.
func (m *ScreenMatch) ApplyMetadata(md Metadata) {
	if md.Name != "" {
		m.Name = md.Name
	}
	if md.Sector != "" {
		m.Sector = md.Sector
	}
	if md.Industry != "" {
		m.Industry = md.Industry
	}
	if md.Currency != "" {
		m.Currency = md.Currency
	}
	if md.MarketCap > 0 {
		m.MarketCap = md.MarketCap
	}
	if md.Volume > 0 {
		m.Volume = md.Volume
	}
	if md.PERatio != nil {
		m.PERatio = md.PERatio
	}
	if md.DividendYield != nil {
		m.DividendYield = md.DividendYield
	}
	if md.High52w > 0 {
		m.High52w = md.High52w
	}
	if md.Low52w > 0 {
		m.Low52w = md.Low52w
	}
}

// PricePoint is one point of a chart series.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// StockDetail is the per-ticker detail record.
type StockDetail struct {
	Ticker        string       `json:"ticker"`
	Name          string       `json:"name"`
	Sector        string       `json:"sector"`
	Industry      string       `json:"industry"`
	Currency      string       `json:"currency"`
	CurrentPrice  float64      `json:"current_price"`
	High52w       float64      `json:"high_52w"`
	Low52w        float64      `json:"low_52w"`
	MA50          *float64     `json:"ma50"`
	MA200         *float64     `json:"ma200"`
	RSI14         *float64     `json:"rsi14"`
	MarketCap     int64        `json:"market_cap"`
	PERatio       *float64     `json:"pe_ratio"`
	ForwardPE     *float64     `json:"forward_pe"`
	PriceToBook   *float64     `json:"pb_ratio"`
	EPS           *float64     `json:"eps"`
	Beta          *float64     `json:"beta"`
	Revenue       *int64       `json:"revenue"`
	ProfitMargin  *float64     `json:"profit_margin"`
	DebtToEquity  *float64     `json:"debt_to_equity"`
	DividendYield *float64     `json:"dividend_yield"`
	Description   *string      `json:"description"`
	Source        string       `json:"source"`
	PriceHistory  []PricePoint `json:"price_history"`
}
