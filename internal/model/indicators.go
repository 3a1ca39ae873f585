package model

import "time"

// IndicatorPoint is one value of an SMA, EMA or RSI series.
type IndicatorPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Range is a numeric axis bound pair.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IndicatorSet holds the overlay series for a chart, with the periods used.
type IndicatorSet struct {
	SMAPeriod int              `json:"sma_period"`
	SMA       []IndicatorPoint `json:"sma"`
	EMAPeriod int              `json:"ema_period"`
	EMA       []IndicatorPoint `json:"ema"`
	RSIPeriod int              `json:"rsi_period"`
	RSI       []IndicatorPoint `json:"rsi"`
}

// ChartStyle carries the mark widths suited to the number of points drawn.
type ChartStyle struct {
	CandleWidth float64 `json:"candle_width"`
	LineWidth   float64 `json:"line_width"`
}

// ChartSnapshot is everything the chart renderer needs for one symbol and window.
type ChartSnapshot struct {
	ID          string       `json:"id"`
	Symbol      string       `json:"symbol"`
	Window      TimeWindow   `json:"window"`
	Quotes      []Quote      `json:"quotes"`
	PriceRange  Range        `json:"price_range"`
	VolumeRange Range        `json:"volume_range"`
	XAxisTicks  []time.Time  `json:"x_axis_ticks"`
	Style       ChartStyle   `json:"style"`
	Indicators  IndicatorSet `json:"indicators"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// LastClose returns the close of the newest quote, or 0 for an empty snapshot.
// Quotes in a snapshot are sorted oldest first.
func (s *ChartSnapshot) LastClose() float64 {
	if len(s.Quotes) == 0 {
		return 0
	}
	return s.Quotes[len(s.Quotes)-1].Close
}

// Last returns the final value of a series and whether there was one.
func Last(points []IndicatorPoint) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	return points[len(points)-1].Value, true
}
