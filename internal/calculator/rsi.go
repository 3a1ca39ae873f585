package calculator

import "QuoteChart/internal/model"

// DefaultRSIPeriod is the customary RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index over period. Each point uses the
// plain mean of the gains and losses among the period close-to-close changes
// before it (a rolling window, not Wilder smoothing). A window with no losses
// scores 100. Requires more than period quotes; yields len(quotes)-period points.
func RSI(quotes []model.Quote, period int) []model.IndicatorPoint {
	if period <= 0 || len(quotes) <= period {
		return []model.IndicatorPoint{}
	}
	sorted := sortedByTime(quotes)
	closes := extractCloses(sorted)

	changes := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		changes[i-1] = closes[i] - closes[i-1]
	}

	result := make([]model.IndicatorPoint, 0, len(sorted)-period)
	for i := period; i < len(sorted); i++ {
		var gains, losses float64
		for _, change := range changes[i-period : i] {
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		rsi := 100.0
		if avgLoss != 0 {
			rs := avgGain / avgLoss
			rsi = 100.0 - 100.0/(1.0+rs)
		}
		result = append(result, model.IndicatorPoint{Timestamp: sorted[i].Timestamp(), Value: rsi})
	}
	return result
}
