package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"QuoteChart/internal/model"
)

// QuoteCache stores fetched quote series for a short time so that repeated
// chart requests do not hit the market-data API.
type QuoteCache interface {
	Get(ctx context.Context, key string) ([]model.Quote, bool, error)
	Set(ctx context.Context, key string, quotes []model.Quote, ttl time.Duration) error
}

// HistoryKey is the cache key for a symbol's historical series.
func HistoryKey(symbol string, months int) string {
	return fmt.Sprintf("quotechart:hist:%s:%d", strings.ToUpper(symbol), months)
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]model.Quote, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []model.Quote, time.Duration) error { return nil }
