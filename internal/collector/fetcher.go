package collector

import (
	"context"

	"QuoteChart/internal/model"
)

// Fetcher defines the interface for fetching end-of-day quotes.
type Fetcher interface {
	// FetchEndOfDay returns recent daily quotes for the given symbols.
	FetchEndOfDay(ctx context.Context, symbols []string) ([]model.Quote, error)
	// FetchHistorical returns daily quotes covering the last months for one symbol.
	FetchHistorical(ctx context.Context, symbol string, months int) ([]model.Quote, error)
	Name() string
}
