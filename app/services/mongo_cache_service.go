package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/street-conflate/app/models"
)

// MongoCacheService is the persistent match cache with an in-process
// LRU in front.
type MongoCacheService struct {
	collection *mongo.Collection
	l1         *lru.Cache[string, *models.MatchResult]
	logger     *zap.Logger

	hits   int64
	misses int64
}

// NewMongoCacheService wires the cache collection and its indexes.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	if l1Size <= 0 {
		l1Size = 10000
	}
	l1, err := lru.New[string, *models.MatchResult](l1Size)
	if err != nil {
		return nil, err
	}

	collection := db.Collection("match_cache")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(7 * 24 * 3600),
	})
	if err != nil {
		return nil, fmt.Errorf("mongo cache index: %w", err)
	}

	return &MongoCacheService{
		collection: collection,
		l1:         l1,
		logger:     logger,
	}, nil
}

// Get checks the LRU, then the collection.
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	if result, ok := mcs.l1.Get(key); ok {
		atomic.AddInt64(&mcs.hits, 1)
		return result, true, nil
	}

	var doc models.CachedMatch
	err := mcs.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		atomic.AddInt64(&mcs.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if doc.DictVersion != DictVersion {
		atomic.AddInt64(&mcs.misses, 1)
		return nil, false, nil
	}

	atomic.AddInt64(&mcs.hits, 1)
	mcs.l1.Add(key, &doc.Result)
	return &doc.Result, true, nil
}

// Set writes through the LRU into the collection.
func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.MatchResult) error {
	mcs.l1.Add(key, result)

	doc := models.CachedMatch{
		Key:         key,
		Result:      *result,
		DictVersion: DictVersion,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := mcs.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

// Delete drops one entry from both layers.
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1.Remove(key)
	_, err := mcs.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Clear drops everything.
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1.Purge()
	_, err := mcs.collection.DeleteMany(ctx, bson.M{})
	return err
}

// WarmUp loads the newest entries into the LRU.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := mcs.collection.Find(ctx, bson.M{"dict_version": DictVersion}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var loaded int
	for cursor.Next(ctx) {
		var doc models.CachedMatch
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		result := doc.Result
		mcs.l1.Add(doc.Key, &result)
		loaded++
	}
	mcs.logger.Info("cache warmed", zap.Int("entries", loaded))
	return cursor.Err()
}

// Stats reports hit counters and the stored entry count.
func (mcs *MongoCacheService) Stats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&mcs.hits)
	misses := atomic.LoadInt64(&mcs.misses)

	stats := &CacheStats{TotalHits: hits, TotalMiss: misses}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}

	count, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err == nil {
		stats.TotalItems = count
	}
	return stats, nil
}

// Close is a no-op; the database client is owned by the caller.
func (mcs *MongoCacheService) Close() error {
	return nil
}
