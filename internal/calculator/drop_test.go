package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentinel/internal/model"
)

func bar(high, close float64) model.OHLCV {
	return model.OHLCV{Open: close, High: high, Low: close, Close: close, Volume: 1000}
}

func dated(bars ...model.OHLCV) []model.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i].Time = start.AddDate(0, 0, i)
	}
	return bars
}

func TestComputeDrop_OneDayLookback(t *testing.T) {
	bars := dated(bar(95, 94), bar(100, 99), bar(82, 80))

	res, ok := ComputeDrop(bars, 1)
	require.True(t, ok)
	assert.Equal(t, 80.0, res.CurrentPrice)
	assert.Equal(t, 100.0, res.ReferenceHigh)
	assert.InDelta(t, 20.0, res.DropPct, 1e-9)
}

func TestComputeDrop_TwoDayLookbackUsesMaxHigh(t *testing.T) {
	bars := dated(bar(90, 89), bar(110, 105), bar(90, 88))

	res, ok := ComputeDrop(bars, 2)
	require.True(t, ok)
	assert.Equal(t, 110.0, res.ReferenceHigh)
	assert.InDelta(t, 20.0, res.DropPct, 1e-9)
}

func TestComputeDrop_OtherLookbackFallsBackToOneDay(t *testing.T) {
	bars := dated(bar(200, 150), bar(100, 99), bar(82, 80))

	for _, lookback := range []int{0, 3, 5, -1} {
		res, ok := ComputeDrop(bars, lookback)
		require.True(t, ok, "lookback %d", lookback)
		assert.Equal(t, 100.0, res.ReferenceHigh, "lookback %d", lookback)
	}
}

func TestComputeDrop_TwoDayLookbackWithOnlyTwoBars(t *testing.T) {
	res, ok := ComputeDrop(dated(bar(50, 49), bar(45, 40)), 2)
	require.True(t, ok)
	assert.Equal(t, 50.0, res.ReferenceHigh)
}

func TestComputeDrop_Absent(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		bars []model.OHLCV
	}{
		{"empty", nil},
		{"single bar", dated(bar(10, 9))},
		{"one usable bar", dated(bar(nan, 9), bar(10, 9))},
		{"nan close", dated(bar(10, nan), bar(10, 9))},
		{"zero reference", dated(bar(0, 0), bar(10, 9))},
		{"negative reference", dated(bar(-5, 1), bar(10, 9))},
		{"infinite high", dated(bar(math.Inf(1), 1), bar(10, 9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ComputeDrop(tt.bars, 1)
			assert.False(t, ok)
		})
	}
}

func TestComputeDrop_SkipsUnusableBarsBeforeLatest(t *testing.T) {
	bars := dated(bar(100, 99), bar(math.NaN(), math.NaN()), bar(75, 75))

	res, ok := ComputeDrop(bars, 1)
	require.True(t, ok)
	assert.Equal(t, 100.0, res.ReferenceHigh)
	assert.InDelta(t, 25.0, res.DropPct, 1e-9)
}

func TestComputeDrop_Unrounded(t *testing.T) {
	res, ok := ComputeDrop(dated(bar(3, 3), bar(3, 2)), 1)
	require.True(t, ok)
	assert.InDelta(t, 100.0/3, res.DropPct, 1e-12)
}

func TestIsSuddenDrop(t *testing.T) {
	falling := dated(bar(100, 100), bar(99, 98), bar(95, 94), bar(90, 89), bar(88, 85))
	assert.True(t, IsSuddenDrop(falling, 5, 10))
	assert.False(t, IsSuddenDrop(falling, 5, 20))
	assert.False(t, IsSuddenDrop(falling[:3], 5, 10))
}
