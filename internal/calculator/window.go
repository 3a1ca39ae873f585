package calculator

import (
	"time"

	"QuoteChart/internal/model"
)

// FilterWindow returns the quotes falling inside window, counted back from the
// newest quote in the series, sorted oldest first. Day arithmetic is done in
// the location of the newest timestamp.
func FilterWindow(quotes []model.Quote, window model.TimeWindow) []model.Quote {
	return FilterWindowIn(quotes, window, nil)
}

// FilterWindowIn is FilterWindow with the calendar used for day subtraction
// made explicit. A nil loc uses the newest timestamp's own location.
func FilterWindowIn(quotes []model.Quote, window model.TimeWindow, loc *time.Location) []model.Quote {
	if len(quotes) == 0 {
		return []model.Quote{}
	}

	latest := quotes[0].Timestamp()
	for _, q := range quotes[1:] {
		if q.Timestamp().After(latest) {
			latest = q.Timestamp()
		}
	}
	if loc != nil {
		latest = latest.In(loc)
	}
	cutoff := latest.AddDate(0, 0, -window.DaysToInclude())

	result := make([]model.Quote, 0, len(quotes))
	for _, q := range sortedByTime(quotes) {
		if !q.Timestamp().Before(cutoff) {
			result = append(result, q)
		}
	}
	return result
}
