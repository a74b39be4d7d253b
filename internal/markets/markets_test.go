package markets

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickersByMarkets(t *testing.T) {
	dax := TickersByMarkets([]string{"dax"})
	assert.Len(t, dax, 40)
	assert.True(t, sort.StringsAreSorted(dax))

	both := TickersByMarkets([]string{"sp500", "nasdaq", "unknown"})
	seen := map[string]bool{}
	for _, tk := range both {
		require.False(t, seen[tk], "duplicate %s", tk)
		seen[tk] = true
	}
	assert.Contains(t, both, "AAPL")
	assert.Less(t, len(both), len(sp500Tickers)+len(nasdaq100Tickers))

	assert.Empty(t, TickersByMarkets([]string{"mars"}))
	assert.Empty(t, TickersByMarkets(nil))
}

func TestSummary(t *testing.T) {
	s := Summary()
	require.Len(t, s, 8)
	assert.Equal(t, "DAX 40 (Germany)", s["dax"].Name)
	assert.Equal(t, "EUR", s["dax"].Currency)
	assert.Equal(t, 40, s["dax"].Count)
	assert.Equal(t, 459, s["sp500"].Count)
	assert.Equal(t, "HKD", s["hangseng"].Currency)
}

func TestGet(t *testing.T) {
	m, ok := Get("ftse")
	require.True(t, ok)
	assert.Equal(t, "GBP", m.Currency)
	_, ok = Get("nope")
	assert.False(t, ok)
	assert.Len(t, All(), 8)
}
