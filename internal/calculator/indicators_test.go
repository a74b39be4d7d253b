package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentinel/internal/model"
)

func TestCalculate52WeekRange(t *testing.T) {
	bars := make([]model.OHLCV, 300)
	for i := range bars {
		p := float64(i + 1)
		bars[i] = model.OHLCV{High: p + 1, Low: p - 1, Close: p}
	}
	// The first 48 bars fall outside the 252-bar window.
	bars[0].High = 10_000

	high, low, err := Calculate52WeekRange(bars)
	require.NoError(t, err)
	assert.Equal(t, 301.0, high)
	assert.Equal(t, 48.0, low)
}

func TestCalculate52WeekRange_IgnoresMissingValues(t *testing.T) {
	bars := []model.OHLCV{
		{High: 12, Low: 8, Close: 10},
		{High: math.NaN(), Low: 1, Close: 5},
		{High: 11, Low: math.NaN(), Close: 10},
	}
	high, low, err := Calculate52WeekRange(bars)
	require.NoError(t, err)
	assert.Equal(t, 12.0, high)
	assert.Equal(t, 8.0, low)

	_, _, err = Calculate52WeekRange(nil)
	assert.Error(t, err)
}

func TestMovingAverage(t *testing.T) {
	bars := make([]model.OHLCV, 60)
	for i := range bars {
		bars[i] = model.OHLCV{High: 1, Close: float64(i + 1)}
	}
	ma := MovingAverage(bars, 50)
	require.NotNil(t, ma)
	assert.InDelta(t, 35.5, *ma, 1e-9)

	assert.Nil(t, MovingAverage(bars, 200))
}

func TestCalculateRSI(t *testing.T) {
	rising := make([]model.OHLCV, 20)
	for i := range rising {
		rising[i] = model.OHLCV{High: 1, Close: float64(100 + i)}
	}
	rsi, ok := CalculateRSI(rising, 14)
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi)

	alternating := make([]model.OHLCV, 30)
	for i := range alternating {
		c := 100.0
		if i%2 == 1 {
			c = 101
		}
		alternating[i] = model.OHLCV{High: 1, Close: c}
	}
	rsi, ok = CalculateRSI(alternating, 14)
	require.True(t, ok)
	assert.InDelta(t, 50, rsi, 5)

	_, ok = CalculateRSI(rising[:10], 14)
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{23.333333, 23.33},
		{2.675, 2.68},
		{-1.005, -1.01},
		{20, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, 2), "Round(%v)", tt.in)
	}
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.Nil(t, RoundPtr(nil, 2))
	v := 1.23456
	assert.Equal(t, 1.235, *RoundPtr(&v, 3))
}
