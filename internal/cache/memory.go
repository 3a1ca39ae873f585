package cache

import (
	"context"
	"sync"
	"time"

	"QuoteChart/internal/model"
)

// MemoryCache is an in-process QuoteCache with per-entry expiry.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	quotes     []model.Quote
	expiration time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem), now: time.Now}
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]model.Quote, bool, error) {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if mc.now().After(item.expiration) {
		mc.mu.Lock()
		delete(mc.items, key)
		mc.mu.Unlock()
		return nil, false, nil
	}
	out := make([]model.Quote, len(item.quotes))
	copy(out, item.quotes)
	return out, true, nil
}

func (mc *MemoryCache) Set(_ context.Context, key string, quotes []model.Quote, ttl time.Duration) error {
	stored := make([]model.Quote, len(quotes))
	copy(stored, quotes)
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.items[key] = memoryItem{quotes: stored, expiration: mc.now().Add(ttl)}
	return nil
}
