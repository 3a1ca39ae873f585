package calculator

import (
	"time"

	"QuoteChart/internal/model"
)

// ChartData is the display-range capability set consumed by chart renderers.
type ChartData interface {
	Filter(quotes []model.Quote, window model.TimeWindow) []model.Quote
	PriceRange(quotes []model.Quote) model.Range
	VolumeRange(quotes []model.Quote) model.Range
	XAxisTicks(quotes []model.Quote) []time.Time
}

// Indicators is the overlay capability set.
type Indicators interface {
	SMA(quotes []model.Quote, period int) []model.IndicatorPoint
	EMA(quotes []model.Quote, period int) []model.IndicatorPoint
	RSI(quotes []model.Quote, period int) []model.IndicatorPoint
}

// Engine implements ChartData and Indicators. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	// Location is the calendar used for window cutoffs; nil uses the data's own zone.
	Location *time.Location
}

var (
	_ ChartData  = Engine{}
	_ Indicators = Engine{}
)

// NewEngine creates an Engine for the given calendar location.
func NewEngine(loc *time.Location) Engine { return Engine{Location: loc} }

func (e Engine) Filter(quotes []model.Quote, window model.TimeWindow) []model.Quote {
	return FilterWindowIn(quotes, window, e.Location)
}

func (Engine) PriceRange(quotes []model.Quote) model.Range  { return PriceRange(quotes) }
func (Engine) VolumeRange(quotes []model.Quote) model.Range { return VolumeRange(quotes) }
func (Engine) XAxisTicks(quotes []model.Quote) []time.Time  { return XAxisTicks(quotes) }

func (Engine) SMA(quotes []model.Quote, period int) []model.IndicatorPoint {
	return SMA(quotes, period)
}

func (Engine) EMA(quotes []model.Quote, period int) []model.IndicatorPoint {
	return EMA(quotes, period)
}

func (Engine) RSI(quotes []model.Quote, period int) []model.IndicatorPoint {
	return RSI(quotes, period)
}
