package calculator

import (
	"fmt"
	"time"

	"QuoteChart/internal/model"
)

// dailyQuotes builds one quote per day from 2024-01-01 with the given closes.
func dailyQuotes(symbol string, closes ...float64) []model.Quote {
	quotes := make([]model.Quote, len(closes))
	for i, c := range closes {
		date := fmt.Sprintf("2024-01-%02dT00:00:00+0000", i+1)
		quotes[i] = model.NewQuote(symbol, date, c, c+1, c-1, c, model.Vol(int64(1000*(i+1))))
	}
	return quotes
}

func quoteAt(ts time.Time, close float64) model.Quote {
	return model.NewQuote("TEST", ts.Format(model.DateLayout), close, close, close, close, nil)
}

func reversed(quotes []model.Quote) []model.Quote {
	out := make([]model.Quote, len(quotes))
	for i, q := range quotes {
		out[len(quotes)-1-i] = q
	}
	return out
}

func values(points []model.IndicatorPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
