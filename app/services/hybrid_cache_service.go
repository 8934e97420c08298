package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/street-conflate/app/models"
)

// HybridCacheService layers redis (fast, volatile) over mongo
// (persistent). Reads promote mongo hits back into redis.
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

// NewHybridCacheService combines the two layers.
func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		redisCache: redisCache,
		mongoCache: mongoCache,
		logger:     logger,
	}
}

// Get tries redis first and falls back to mongo.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	result, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache error, falling back to mongo", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	// promote asynchronously
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.redisCache.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("mongo to redis promotion failed", zap.Error(err), zap.String("key", key))
		}
	}()

	return result, true, nil
}

// Set writes both layers concurrently.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.MatchResult) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Set(ctx, key, result) }()
	go func() { errCh <- hcs.mongoCache.Set(ctx, key, result) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}

// Delete drops the key from both layers.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	if err := hcs.redisCache.Delete(ctx, key); err != nil {
		return err
	}
	return hcs.mongoCache.Delete(ctx, key)
}

// Clear empties both layers.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.redisCache.Clear(ctx); err != nil {
		return err
	}
	return hcs.mongoCache.Clear(ctx)
}

// Stats combines both layers.
func (hcs *HybridCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.Stats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.Stats(ctx)

	switch {
	case redisErr != nil && mongoErr != nil:
		return nil, fmt.Errorf("both cache layers failed: %v, %v", redisErr, mongoErr)
	case redisErr != nil:
		return mongoStats, nil
	case mongoErr != nil:
		return redisStats, nil
	}

	combined := &CacheStats{
		TotalHits:  redisStats.TotalHits + mongoStats.TotalHits,
		TotalMiss:  redisStats.TotalMiss + mongoStats.TotalMiss,
		TotalItems: redisStats.TotalItems + mongoStats.TotalItems,
	}
	if total := combined.TotalHits + combined.TotalMiss; total > 0 {
		combined.HitRate = float64(combined.TotalHits) / float64(total)
	}
	return combined, nil
}

// Close releases both layers.
func (hcs *HybridCacheService) Close() error {
	if err := hcs.redisCache.Close(); err != nil {
		return err
	}
	return hcs.mongoCache.Close()
}
