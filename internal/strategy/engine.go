package strategy

import (
	"fmt"

	"QuoteChart/internal/model"
)

// RSI zone thresholds.
const (
	OversoldBelow   = 30.0
	OverboughtAbove = 70.0
)

// ClassifyZone maps an RSI value to its zone.
func ClassifyZone(rsi float64) model.RSIZone {
	switch {
	case rsi < OversoldBelow:
		return model.ZoneOversold
	case rsi > OverboughtAbove:
		return model.ZoneOverbought
	default:
		return model.ZoneNeutral
	}
}

// Evaluate computes the signal for a chart snapshot from the last values of
// its indicator series. Missing series (window too short) score zero.
func Evaluate(snap *model.ChartSnapshot) *model.Signal {
	if snap == nil {
		return nil
	}
	in := newInputs(snap)

	// Step a: factors that stand on their own
	f1 := scoreRSI(in)
	f2 := scoreSMADeviation(in)
	f4 := scoreTrend(in)

	// Step b: range position is only pushed to its extreme when the rest agree
	otherFactorsAvg := (f1.RawScore + f2.RawScore + f4.RawScore) / 3.0
	f3 := scoreRangePosition(in, otherFactorsAvg)

	factors := []model.FactorScore{f1, f2, f3, f4}
	var total float64
	for _, f := range factors {
		total += f.Weighted
	}

	signal := &model.Signal{
		Symbol:     snap.Symbol,
		Window:     snap.Window,
		LastClose:  in.close,
		Zone:       model.ZoneUnknown,
		Trend:      classifyTrend(in),
		Factors:    factors,
		TotalScore: total,
	}
	if in.hasRSI {
		signal.RSI = in.rsi
		signal.Zone = ClassifyZone(in.rsi)
	}

	switch signal.Zone {
	case model.ZoneOverbought:
		signal.WarningMsg = fmt.Sprintf("⚠️ RSI %.1f above %.0f: overbought, consider taking profit", in.rsi, OverboughtAbove)
	case model.ZoneOversold:
		signal.WarningMsg = fmt.Sprintf("⚠️ RSI %.1f below %.0f: oversold", in.rsi, OversoldBelow)
	}
	return signal
}

// inputs are the scalar values the factors read from a snapshot.
type inputs struct {
	close    float64
	hasClose bool
	sma      float64
	hasSMA   bool
	ema      float64
	hasEMA   bool
	rsi      float64
	hasRSI   bool
	high     float64
	low      float64
}

func newInputs(snap *model.ChartSnapshot) inputs {
	var in inputs
	if len(snap.Quotes) > 0 {
		in.close, in.hasClose = snap.LastClose(), true
		in.high, in.low = snap.Quotes[0].High, snap.Quotes[0].Low
		for _, q := range snap.Quotes[1:] {
			if q.High > in.high {
				in.high = q.High
			}
			if q.Low < in.low {
				in.low = q.Low
			}
		}
	}
	in.sma, in.hasSMA = model.Last(snap.Indicators.SMA)
	in.ema, in.hasEMA = model.Last(snap.Indicators.EMA)
	in.rsi, in.hasRSI = model.Last(snap.Indicators.RSI)
	return in
}

// classifyTrend: UP when close and EMA both sit above SMA, DOWN when both sit
// below, FLAT otherwise.
func classifyTrend(in inputs) model.Trend {
	if !in.hasClose || !in.hasSMA || !in.hasEMA {
		return model.TrendUnknown
	}
	switch {
	case in.close > in.sma && in.ema > in.sma:
		return model.TrendUp
	case in.close < in.sma && in.ema < in.sma:
		return model.TrendDown
	default:
		return model.TrendFlat
	}
}
