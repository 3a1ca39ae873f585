package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"QuoteChart/internal/model"
)

func TestFormatOverview(t *testing.T) {
	rows := []model.QuoteRow{
		{Quote: model.NewQuote("AAPL", "2024-01-03T00:00:00+0000", 147, 151, 146, 150, model.Vol(52_100_000))},
		{Quote: model.NewQuote("MSFT", "2024-01-02T00:00:00+0000", 285, 286, 279, 280, nil)},
	}
	msg := FormatOverview(rows)

	assert.Contains(t, msg, "| 2024-01-03")
	assert.Contains(t, msg, "🟢 <b>AAPL</b> 150.00  +3.00 (+2.0%)  Vol 52.1M")
	assert.Contains(t, msg, "🔴 <b>MSFT</b> 280.00  -5.00 (-1.8%)\n")

	assert.Contains(t, FormatOverview(nil), "No quotes available.")
}

func TestFormatSnapshot(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	snap := &model.ChartSnapshot{
		Symbol: "AAPL",
		Window: model.Week,
		Quotes: []model.Quote{
			model.NewQuote("AAPL", "2024-01-02T00:00:00+0000", 140, 142, 139, 141, nil),
			model.NewQuote("AAPL", "2024-01-03T00:00:00+0000", 147, 151, 146, 150, nil),
		},
		PriceRange: model.Range{Min: 135.4, Max: 153.4},
		Indicators: model.IndicatorSet{
			SMAPeriod: 20, SMA: []model.IndicatorPoint{},
			EMAPeriod: 20, EMA: []model.IndicatorPoint{},
			RSIPeriod: 14, RSI: []model.IndicatorPoint{{Timestamp: day, Value: 72.25}},
		},
	}

	msg := FormatSnapshot(snap, nil)
	assert.Contains(t, msg, "<b>AAPL</b> | week")
	assert.Contains(t, msg, "2024-01-02 – 2024-01-03 (2 sessions)")
	assert.Contains(t, msg, "Close: 150.00  +3.00 (+2.0%)")
	assert.Contains(t, msg, "Axis: 135.40 – 153.40")
	assert.Contains(t, msg, "SMA20: n/a | EMA20: n/a | RSI14: 72.2")
	assert.NotContains(t, msg, "Signal")

	sig := &model.Signal{
		Zone:       model.ZoneOverbought,
		Trend:      model.TrendFlat,
		Factors:    []model.FactorScore{{Name: "RSI", RawScore: -1.5, Weight: 0.4, Weighted: -0.6, Commentary: "RSI=72"}},
		TotalScore: -0.6,
		WarningMsg: "overbought",
	}
	msg = FormatSnapshot(snap, sig)
	assert.Contains(t, msg, "zone OVERBOUGHT, trend FLAT")
	assert.Contains(t, msg, "RSI(RSI=72): -1.5 (×0.40) = -0.600")
	assert.Contains(t, msg, "Total: -0.600")
	assert.Contains(t, msg, "\noverbought\n")

	empty := FormatSnapshot(&model.ChartSnapshot{Symbol: "X", Window: model.Month}, sig)
	assert.Contains(t, empty, "No quotes in this window.")
}

func TestFormatZoneAlert(t *testing.T) {
	msg := FormatZoneAlert(&model.Signal{
		Symbol: "TSLA", LastClose: 181.5, RSI: 27.3, Zone: model.ZoneOversold, Trend: model.TrendDown,
	}, model.ZoneNeutral)
	assert.Contains(t, msg, "<b>TSLA</b> RSI zone NEUTRAL → OVERSOLD")
	assert.Contains(t, msg, "Close 181.50 | RSI 27.3 | trend DOWN")
}

func TestFormatWatchlist(t *testing.T) {
	assert.Contains(t, FormatWatchlist(nil), "empty")
	assert.Equal(t, "👀 <b>Watchlist</b> (2)\nAAPL, MSFT", FormatWatchlist([]string{"AAPL", "MSFT"}))
}
