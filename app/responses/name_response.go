package responses

import (
	"github.com/street-conflate/app/models"
	"github.com/street-conflate/internal/text"
)

// ErrorResponse is the uniform error shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// TokenizeResponse carries the canonical token sequence.
type TokenizeResponse struct {
	Name             string       `json:"name"`
	Tokens           []text.Token `json:"tokens"`
	ProcessingTimeMs int64        `json:"processing_time_ms"`
}

// TitlecaseResponse carries the cased display text.
type TitlecaseResponse struct {
	Name   string `json:"name"`
	Result string `json:"result"`
}

// FoldResponse carries the diacritic-folded text.
type FoldResponse struct {
	Name   string `json:"name"`
	Result string `json:"result"`
}

// MatchResponse carries the linker outcome.
type MatchResponse struct {
	Result           models.MatchResult `json:"result"`
	CacheHit         bool               `json:"cache_hit"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// StreetSearchResponse carries ranked street name hits.
type StreetSearchResponse struct {
	Query string            `json:"query"`
	Hits  []StreetSearchHit `json:"hits"`
}

// StreetSearchHit is one ranked street name.
type StreetSearchHit struct {
	ID      int64   `json:"id"`
	Display string  `json:"display"`
	Score   float64 `json:"score"`
}
