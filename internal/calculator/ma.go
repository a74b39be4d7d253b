package calculator

import (
	"errors"

	"DipSentinel/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period), nil
}

// MovingAverage returns the SMA of closes over period, or nil when the series is too short.
func MovingAverage(bars []model.OHLCV, period int) *float64 {
	ma, err := CalculateSMA(Closes(bars), period)
	if err != nil {
		return nil
	}
	return &ma
}

// Closes extracts the close of every usable bar.
func Closes(bars []model.OHLCV) []float64 {
	usable := UsableBars(bars)
	closes := make([]float64, len(usable))
	for i, b := range usable {
		closes[i] = b.Close
	}
	return closes
}
