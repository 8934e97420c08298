// Package search indexes street display names for free-text lookup.
// Meilisearch narrows the candidate set; final ranking blends
// Jaro-Winkler and edit distance.
package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// Config holds the Meilisearch connection settings.
type Config struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
	MaxHits   int64
}

// StreetDoc is one indexed street name.
type StreetDoc struct {
	ID      int64  `json:"id"`
	Display string `json:"display"`
}

// Hit is one ranked search result.
type Hit struct {
	ID      int64
	Display string
	Score   float64
}

// StreetSearcher wraps the search index.
type StreetSearcher struct {
	client    meilisearch.ServiceManager
	indexName string
	maxHits   int64
	logger    *zap.Logger
}

// NewStreetSearcher connects and verifies the search backend.
func NewStreetSearcher(cfg Config, logger *zap.Logger) (*StreetSearcher, error) {
	if cfg.IndexName == "" {
		cfg.IndexName = "street_names"
	}
	if cfg.MaxHits <= 0 {
		cfg.MaxHits = 20
	}

	client := meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("search backend unreachable: %w", err)
	}

	return &StreetSearcher{
		client:    client,
		indexName: cfg.IndexName,
		maxHits:   cfg.MaxHits,
		logger:    logger,
	}, nil
}

// Seed adds or replaces street documents in the index.
func (ss *StreetSearcher) Seed(docs []StreetDoc) error {
	if len(docs) == 0 {
		return nil
	}
	index := ss.client.Index(ss.indexName)
	if _, err := index.AddDocuments(docs, "id"); err != nil {
		return fmt.Errorf("seed street index: %w", err)
	}
	ss.logger.Info("street index seeded", zap.Int("docs", len(docs)))
	return nil
}

// Search returns index hits re-ranked by name similarity to the query.
func (ss *StreetSearcher) Search(query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("query required")
	}
	if limit <= 0 || int64(limit) > ss.maxHits {
		limit = int(ss.maxHits)
	}

	index := ss.client.Index(ss.indexName)
	resp, err := index.Search(query, &meilisearch.SearchRequest{Limit: ss.maxHits})
	if err != nil {
		return nil, fmt.Errorf("street search: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		doc, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		display, _ := doc["display"].(string)
		id, _ := doc["id"].(float64)
		hits = append(hits, Hit{
			ID:      int64(id),
			Display: display,
			Score:   Similarity(query, display),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
