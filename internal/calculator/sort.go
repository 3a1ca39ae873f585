package calculator

import (
	"sort"

	"QuoteChart/internal/model"
)

// sortedByTime returns deep copies of quotes ordered oldest first. The input
// is never reordered and no volume pointer is shared with it.
func sortedByTime(quotes []model.Quote) []model.Quote {
	sorted := make([]model.Quote, len(quotes))
	for i, q := range quotes {
		sorted[i] = q.Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp().Before(sorted[j].Timestamp())
	})
	return sorted
}

func extractCloses(quotes []model.Quote) []float64 {
	closes := make([]float64, len(quotes))
	for i, q := range quotes {
		closes[i] = q.Close
	}
	return closes
}
