package calculator

import (
	"math"
	"sort"
	"time"

	"QuoteChart/internal/model"
)

// DefaultRange is returned when there is nothing to scale an axis against.
var DefaultRange = model.Range{Min: 0, Max: 100}

const (
	pricePadBelow  = 0.3
	pricePadAbove  = 0.2
	volumeHeadroom = 1.2
	tickCount      = 5
)

// PriceRange returns the price axis bounds: the lowest low padded by 30% of the
// high-low span below, and the highest high padded by 20% above.
func PriceRange(quotes []model.Quote) model.Range {
	if len(quotes) == 0 {
		return DefaultRange
	}
	low := math.Inf(1)
	high := math.Inf(-1)
	for _, q := range quotes {
		if q.Low < low {
			low = q.Low
		}
		if q.High > high {
			high = q.High
		}
	}
	span := high - low
	return model.Range{
		Min: low - span*pricePadBelow,
		Max: high + span*pricePadAbove,
	}
}

// VolumeRange returns (0, 1.2 × max volume). Quotes without volume are skipped.
func VolumeRange(quotes []model.Quote) model.Range {
	var maxVolume int64
	found := false
	for _, q := range quotes {
		if q.Volume == nil {
			continue
		}
		if !found || *q.Volume > maxVolume {
			maxVolume = *q.Volume
		}
		found = true
	}
	if !found {
		return DefaultRange
	}
	return model.Range{Min: 0, Max: float64(maxVolume) * volumeHeadroom}
}

// XAxisTicks picks up to five label dates. With five or more points it takes
// indices 0, s, 2s, 3s and n-1 where s = (n-1)/4, so ticks are spaced by index
// and not by time.
func XAxisTicks(quotes []model.Quote) []time.Time {
	dates := make([]time.Time, len(quotes))
	for i, q := range quotes {
		dates[i] = q.Timestamp()
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	n := len(dates)
	if n < tickCount {
		return dates
	}
	step := (n - 1) / 4
	return []time.Time{
		dates[0],
		dates[step],
		dates[step*2],
		dates[step*3],
		dates[n-1],
	}
}
