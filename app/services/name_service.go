package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/street-conflate/app/models"
	"github.com/street-conflate/app/requests"
	"github.com/street-conflate/internal/linker"
	"github.com/street-conflate/internal/text"
	"github.com/street-conflate/internal/types"
)

// DictVersion tags cache entries so dictionary changes invalidate them.
const DictVersion = "1.0.0"

// NameService runs the normalization and matching core behind the API.
// Contexts are built once per (country, region, languages) and shared;
// tokenizations are memoized in an in-process LRU.
type NameService struct {
	logger *zap.Logger

	mu       sync.RWMutex
	contexts map[string]*types.Context

	memo *lru.Cache[string, []text.Token]
}

// NewNameService wires the service with the given memo capacity.
func NewNameService(memoSize int, logger *zap.Logger) (*NameService, error) {
	if memoSize <= 0 {
		memoSize = 10000
	}
	memo, err := lru.New[string, []text.Token](memoSize)
	if err != nil {
		return nil, err
	}
	return &NameService{
		logger:   logger,
		contexts: make(map[string]*types.Context),
		memo:     memo,
	}, nil
}

func (s *NameService) contextFor(req requests.ContextRequest) (*types.Context, error) {
	if req.Country == "" {
		req.Country = "US"
	}
	if len(req.Languages) == 0 {
		req.Languages = []string{"en"}
	}

	key := strings.ToUpper(req.Country) + "/" + strings.ToUpper(req.Region) + "/" + strings.ToLower(strings.Join(req.Languages, ","))

	s.mu.RLock()
	ctx, ok := s.contexts[key]
	s.mu.RUnlock()
	if ok {
		return ctx, nil
	}

	ctx, err := types.BuildContext(types.InputContext{
		Country:   req.Country,
		Region:    req.Region,
		Languages: req.Languages,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.contexts[key] = ctx
	s.mu.Unlock()

	s.logger.Info("context built", zap.String("key", key))
	return ctx, nil
}

// Tokenize canonicalizes one display name.
func (s *NameService) Tokenize(req requests.TokenizeRequest) ([]text.Token, error) {
	ctx, err := s.contextFor(req.Context)
	if err != nil {
		return nil, err
	}

	memoKey := ctx.Country + "\x1f" + req.Name
	if tokens, ok := s.memo.Get(memoKey); ok {
		return tokens, nil
	}

	tokens := ctx.Tokens.Process(req.Name, ctx.Country)
	s.memo.Add(memoKey, tokens)
	return tokens, nil
}

// Titlecase renders one display name with locale casing.
func (s *NameService) Titlecase(req requests.TitlecaseRequest) (string, error) {
	ctx, err := s.contextFor(req.Context)
	if err != nil {
		return "", err
	}
	return text.Titlecase(req.Name, ctx.Country), nil
}

// Fold strips diacritics.
func (s *NameService) Fold(name string) string {
	return text.Fold(name)
}

// Match runs the linker for one request.
func (s *NameService) Match(req requests.MatchRequest) (*models.MatchResult, error) {
	ctx, err := s.contextFor(req.Context)
	if err != nil {
		return nil, err
	}
	if len(req.Primary) == 0 {
		return nil, fmt.Errorf("primary names required")
	}

	primary := linker.NewLink(0, buildNames(req.Primary, ctx))
	potentials := make([]linker.Link, 0, len(req.Candidates))
	for _, candidate := range req.Candidates {
		potentials = append(potentials, linker.NewLink(candidate.ID, buildNames(candidate.Names, ctx)))
	}

	result, err := linker.Match(primary, potentials, req.Strict)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return &models.MatchResult{Matched: false}, nil
	}
	return &models.MatchResult{Matched: true, ID: result.ID, Score: result.Score}, nil
}

// Fingerprint derives the cache key for a match request.
func (s *NameService) Fingerprint(req requests.MatchRequest) string {
	payload, _ := json.Marshal(struct {
		requests.MatchRequest
		Version string `json:"version"`
	}{req, DictVersion})
	sum := sha256.Sum256(payload)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func buildNames(displays []string, ctx *types.Context) *types.Names {
	names := make([]types.Name, 0, len(displays))
	for _, display := range displays {
		names = append(names, types.NewName(display, 0, "", ctx))
	}
	return types.NewNames(names)
}
