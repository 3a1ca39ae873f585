package calculator

import (
	"fmt"
	"time"

	"QuoteChart/internal/model"
)

// FormatVolume abbreviates a share count: 1.2B, 3.4M, 5.6K or the plain number.
func FormatVolume(volume int64) string {
	v := float64(volume)
	switch {
	case volume >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case volume >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case volume >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// CandleWidth is the candlestick body width in points for a series of n quotes.
func CandleWidth(n int) float64 {
	switch {
	case n <= 7:
		return 12
	case n <= 30:
		return 8
	default:
		return 4
	}
}

// LineWidth is the close-line width in points for a series of n quotes.
func LineWidth(n int) float64 {
	switch {
	case n <= 7:
		return 8
	case n <= 30:
		return 4
	default:
		return 2
	}
}

// Direction is the colouring bucket of a candle or volume bar.
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
)

// CandleDirection is bullish only when the close is strictly above the open.
func CandleDirection(q model.Quote) Direction {
	if q.Close > q.Open {
		return Bullish
	}
	return Bearish
}

// ShortDate renders an axis label such as "Jan 2".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}
