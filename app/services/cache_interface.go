package services

import (
	"context"

	"github.com/street-conflate/app/models"
)

// CacheStats summarizes cache effectiveness.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// MatchCache stores linker results keyed by request fingerprint.
type MatchCache interface {
	Get(ctx context.Context, key string) (*models.MatchResult, bool, error)
	Set(ctx context.Context, key string, result *models.MatchResult) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*CacheStats, error)
	Close() error
}
