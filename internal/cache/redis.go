package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/model"
)

// RedisConfig represents Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache is a QuoteCache backed by Redis, storing series as JSON.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Infof("redis cache connected: %s", cfg.Addr)
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]model.Quote, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var quotes []model.Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, false, fmt.Errorf("decode cached quotes: %w", err)
	}
	return quotes, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, quotes []model.Quote, ttl time.Duration) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("encode quotes: %w", err)
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Close releases the Redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
