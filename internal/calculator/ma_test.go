package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_Guards(t *testing.T) {
	quotes := dailyQuotes("AAPL", 1, 2, 3)
	assert.Empty(t, SMA(nil, 3))
	assert.Empty(t, SMA(quotes, 0))
	assert.Empty(t, SMA(quotes, -1))
	assert.Empty(t, SMA(quotes, 4))
	assert.NotNil(t, SMA(quotes, 4))
}

func TestSMA_PeriodOneIsCloses(t *testing.T) {
	quotes := dailyQuotes("AAPL", 5, 3, 8, 1)
	got := SMA(reversed(quotes), 1)
	require.Len(t, got, 4)
	for i, p := range got {
		assert.Equal(t, quotes[i].Close, p.Value)
		assert.True(t, p.Timestamp.Equal(quotes[i].Timestamp()))
	}
}

func TestSMA_TenDayScenario(t *testing.T) {
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	quotes := dailyQuotes("AAPL", closes...)

	got := SMA(quotes, 3)

	require.Len(t, got, 8)
	assert.InDelta(t, 101.0, got[0].Value, 1e-9)
	assert.InDelta(t, 108.0, got[7].Value, 1e-9)
	assert.True(t, got[0].Timestamp.Equal(quotes[2].Timestamp()))
	assert.True(t, got[7].Timestamp.Equal(quotes[9].Timestamp()))
}

func TestEMA_Guards(t *testing.T) {
	quotes := dailyQuotes("AAPL", 1, 2, 3)
	assert.Empty(t, EMA(nil, 2))
	assert.Empty(t, EMA(quotes, 0))
	assert.Empty(t, EMA(quotes, 5))
}

func TestEMA_Values(t *testing.T) {
	quotes := dailyQuotes("AAPL", 1, 2, 3, 4, 5)

	got := EMA(reversed(quotes), 3)

	// seed = (1+2+3)/3 = 2, k = 0.5
	require.Len(t, got, 3)
	assert.InDeltaSlice(t, []float64{2, 3, 4}, values(got), 1e-9)
	assert.True(t, got[0].Timestamp.Equal(quotes[2].Timestamp()))
}

func TestEMA_SeedMatchesSMA(t *testing.T) {
	quotes := dailyQuotes("MSFT", 10, 12, 9, 14, 13, 15, 11)
	for period := 1; period <= len(quotes); period++ {
		ema := EMA(quotes, period)
		sma := SMA(quotes[:period], period)
		require.Len(t, ema, len(quotes)-period+1)
		require.Len(t, sma, 1)
		assert.InDelta(t, sma[0].Value, ema[0].Value, 1e-9, "period %d", period)
	}
}

func TestEMA_FullPeriodIsSingleSMA(t *testing.T) {
	quotes := dailyQuotes("AAPL", 2, 4, 6)
	got := EMA(quotes, 3)
	require.Len(t, got, 1)
	assert.InDelta(t, 4.0, got[0].Value, 1e-9)
}
