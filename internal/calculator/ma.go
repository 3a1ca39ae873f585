package calculator

import "QuoteChart/internal/model"

// SMA computes the simple moving average of closes over period. The series is
// sorted by timestamp first; one point is emitted per full window, so the
// result has len(quotes)-period+1 points, or none when period is out of range.
func SMA(quotes []model.Quote, period int) []model.IndicatorPoint {
	if len(quotes) == 0 || period <= 0 || period > len(quotes) {
		return []model.IndicatorPoint{}
	}
	sorted := sortedByTime(quotes)
	closes := extractCloses(sorted)

	result := make([]model.IndicatorPoint, 0, len(sorted)-period+1)
	for i := period - 1; i < len(sorted); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += closes[j]
		}
		result = append(result, model.IndicatorPoint{
			Timestamp: sorted[i].Timestamp(),
			Value:     sum / float64(period),
		})
	}
	return result
}

// EMA computes the exponential moving average of closes over period, seeded
// with the SMA of the first period closes and smoothed by k = 2/(period+1).
func EMA(quotes []model.Quote, period int) []model.IndicatorPoint {
	if len(quotes) == 0 || period <= 0 || period > len(quotes) {
		return []model.IndicatorPoint{}
	}
	sorted := sortedByTime(quotes)

	seed := SMA(sorted[:period], period)
	ema := seed[len(seed)-1].Value
	k := 2.0 / float64(period+1)

	result := make([]model.IndicatorPoint, 0, len(sorted)-period+1)
	result = append(result, model.IndicatorPoint{Timestamp: sorted[period-1].Timestamp(), Value: ema})
	for i := period; i < len(sorted); i++ {
		ema = (sorted[i].Close-ema)*k + ema
		result = append(result, model.IndicatorPoint{Timestamp: sorted[i].Timestamp(), Value: ema})
	}
	return result
}
