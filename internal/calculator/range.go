package calculator

import (
	"errors"
	"math"

	"DipSentinel/internal/model"
)

// TradingDaysPerYear is the row count of one year of daily bars.
const TradingDaysPerYear = 252

// Calculate52WeekRange scans the most recent 252 usable bars and returns the
// highest high and the lowest low. Bars with a missing low only count towards the high.
func Calculate52WeekRange(dailyBars []model.OHLCV) (high, low float64, err error) {
	usable := UsableBars(dailyBars)
	if len(usable) == 0 {
		return 0, 0, errors.New("no usable daily bars")
	}
	start := len(usable) - TradingDaysPerYear
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range usable[start:] {
		high = math.Max(high, b.High)
		if finite(b.Low) {
			low = math.Min(low, b.Low)
		}
	}
	if math.IsInf(low, 1) {
		low = high
	}
	return high, low, nil
}
