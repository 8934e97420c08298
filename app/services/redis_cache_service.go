package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/street-conflate/app/models"
)

// RedisCacheService is the fast distributed match cache.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisCacheService connects and verifies the redis link.
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "street_conflate:",
		ttl:    24 * time.Hour,
	}, nil
}

// Get looks the fingerprint up.
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	val, err := rcs.client.Get(ctx, rcs.prefix+key).Result()
	if err == redis.Nil {
		atomic.AddInt64(&rcs.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result models.MatchResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false, err
	}

	atomic.AddInt64(&rcs.hits, 1)
	rcs.logger.Debug("redis cache hit", zap.String("key", key))
	return &result, true, nil
}

// Set stores the result under the fingerprint with TTL.
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.MatchResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return rcs.client.Set(ctx, rcs.prefix+key, raw, rcs.ttl).Err()
}

// Delete drops one entry.
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	return rcs.client.Del(ctx, rcs.prefix+key).Err()
}

// Clear drops every entry under the service prefix.
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	iter := rcs.client.Scan(ctx, 0, rcs.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := rcs.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Stats reports hit counters for this process.
func (rcs *RedisCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&rcs.hits)
	misses := atomic.LoadInt64(&rcs.misses)

	stats := &CacheStats{TotalHits: hits, TotalMiss: misses}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}

	count, err := rcs.client.DBSize(ctx).Result()
	if err == nil {
		stats.TotalItems = count
	}
	return stats, nil
}

// Close releases the client.
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
