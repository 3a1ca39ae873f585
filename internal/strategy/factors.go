package strategy

import (
	"fmt"
	"math"

	"QuoteChart/internal/model"
)

// Factor weights; they sum to 1.
const (
	weightRSI           = 0.40
	weightSMADeviation  = 0.35
	weightRangePosition = 0.10
	weightTrend         = 0.15
)

func factor(name string, score, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// scoreRSI scores the latest RSI. Low RSI scores positive.
// Weight: 0.40
func scoreRSI(in inputs) model.FactorScore {
	if !in.hasRSI {
		return factor("RSI", 0, weightRSI, "RSI unavailable")
	}
	rsi := in.rsi
	var score float64
	switch {
	case rsi <= 25:
		score = 2.0
	case rsi <= 30:
		score = 1.5
	case rsi <= 40:
		score = 1.0
	case rsi <= 45:
		score = 0.5
	case rsi <= 55:
		score = 0
	case rsi <= 60:
		score = -0.5
	case rsi <= 70:
		score = -1.0
	case rsi <= 80:
		score = -1.5
	default:
		score = -2.0
	}
	return factor("RSI", score, weightRSI, fmt.Sprintf("RSI=%.0f", rsi))
}

// scoreSMADeviation scores how far the close is from the SMA, in percent.
// Weight: 0.35
func scoreSMADeviation(in inputs) model.FactorScore {
	if !in.hasClose || !in.hasSMA || in.sma == 0 {
		return factor("SMA deviation", 0, weightSMADeviation, "SMA unavailable")
	}
	deviation := (in.close - in.sma) / in.sma * 100

	var score float64
	switch {
	case deviation <= -10:
		score = 2.0
	case deviation <= -5:
		score = 1.5
	case deviation <= -2.5:
		score = 1.0
	case deviation <= 0:
		score = 0.5
	case deviation <= 2.5:
		score = 0
	case deviation <= 5:
		score = -0.5
	case deviation <= 7.5:
		score = -1.0
	case deviation <= 10:
		score = -1.5
	default:
		score = -2.0
	}
	return factor("SMA deviation", score, weightSMADeviation, fmt.Sprintf("%+.1f%% vs SMA", deviation))
}

// scoreRangePosition scores where the close sits between the window low and high.
// Weight: 0.10
// Above 95% it only reaches -2 when the other factors average below -1,
// otherwise it caps at -1.
func scoreRangePosition(in inputs, otherFactorsAvg float64) model.FactorScore {
	if !in.hasClose || in.high <= in.low {
		return factor("Range position", 0, weightRangePosition, "range unavailable")
	}
	pos := (in.close - in.low) / (in.high - in.low) * 100

	var score float64
	switch {
	case pos <= 10:
		score = 2.0
	case pos <= 20:
		score = 1.5
	case pos <= 30:
		score = 1.0
	case pos <= 40:
		score = 0.5
	case pos <= 60:
		score = 0
	case pos <= 70:
		score = -0.5
	case pos <= 80:
		score = -1.0
	case pos <= 95:
		score = -1.5
	default:
		if otherFactorsAvg < -1 {
			score = -2.0
		} else {
			score = -1.0
		}
	}
	return factor("Range position", score, weightRangePosition, fmt.Sprintf("position=%.0f%%", pos))
}

// scoreTrend scores moving-average alignment and proximity to the window extremes.
// Weight: 0.15
// Bull alignment: close > SMA and EMA > SMA
// Bear alignment: close < SMA and EMA < SMA
func scoreTrend(in inputs) model.FactorScore {
	switch classifyTrend(in) {
	case model.TrendUp:
		if in.high > 0 && math.Abs(in.close-in.high)/in.high < 0.01 {
			return factor("Trend", 1.5, weightTrend, "bullish alignment at window high")
		}
		return factor("Trend", 1.0, weightTrend, "bullish alignment")
	case model.TrendDown:
		if in.low > 0 && math.Abs(in.close-in.low)/in.low < 0.01 {
			return factor("Trend", -1.0, weightTrend, "bearish alignment at window low")
		}
		return factor("Trend", -0.5, weightTrend, "bearish alignment")
	case model.TrendFlat:
		return factor("Trend", 0, weightTrend, "ranging")
	default:
		return factor("Trend", 0, weightTrend, "moving averages unavailable")
	}
}
