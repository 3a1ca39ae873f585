package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"QuoteChart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuotes() []model.Quote {
	return []model.Quote{
		model.NewQuote("AAPL", "2024-01-02T00:00:00+0000", 1, 2, 0.5, 1.5, model.Vol(100)),
		model.NewQuote("AAPL", "2024-01-03T00:00:00+0000", 1.5, 2.5, 1, 2, nil),
	}
}

func TestHistoryKey(t *testing.T) {
	assert.Equal(t, "quotechart:hist:AAPL:6", HistoryKey("aapl", 6))
}

func TestNoopCache(t *testing.T) {
	var c QuoteCache = NoopCache{}
	require.NoError(t, c.Set(context.Background(), "k", sampleQuotes(), time.Minute))
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", sampleQuotes(), time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 2)

	now = now.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	quotes := sampleQuotes()
	require.NoError(t, c.Set(ctx, "k", quotes, time.Minute))
	quotes[0].Close = 999

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, 1.5, got[0].Close)
	got[1].Close = 111
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, 2.0, again[1].Close)
}

// Runs only when a Redis server is available, e.g. REDIS_TEST_ADDR=localhost:6379.
func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer c.Close()

	key := HistoryKey("TEST", 1)
	require.NoError(t, c.Set(ctx, key, sampleQuotes(), time.Minute))
	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.True(t, got[0].HasTimestamp())
	assert.Nil(t, got[1].Volume)
}
