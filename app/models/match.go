package models

import "time"

// MatchResult is the linker outcome for one request: the winning
// candidate and its score, or no match at all.
type MatchResult struct {
	Matched bool    `json:"matched" bson:"matched"`
	ID      int64   `json:"id,omitempty" bson:"id,omitempty"`
	Score   float64 `json:"score,omitempty" bson:"score,omitempty"`
}

// CachedMatch is the persisted cache document for a match request.
type CachedMatch struct {
	Key         string      `bson:"_id" json:"key"`
	Result      MatchResult `bson:"result" json:"result"`
	DictVersion string      `bson:"dict_version" json:"dict_version"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
}
