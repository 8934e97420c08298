package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/street-conflate/app/requests"
	"github.com/street-conflate/app/responses"
	"github.com/street-conflate/app/services"
)

// NameController serves the normalization and matching endpoints.
type NameController struct {
	nameService *services.NameService
	cache       services.MatchCache
	logger      *zap.Logger
}

// NewNameController wires the controller.
func NewNameController(nameService *services.NameService, cache services.MatchCache, logger *zap.Logger) *NameController {
	return &NameController{
		nameService: nameService,
		cache:       cache,
		logger:      logger,
	}
}

// Tokenize canonicalizes one display name.
func (nc *NameController) Tokenize(c *gin.Context) {
	var req requests.TokenizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	start := time.Now()
	tokens, err := nc.nameService.Tokenize(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "CONTEXT_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.TokenizeResponse{
		Name:             req.Name,
		Tokens:           tokens,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// Titlecase renders one display name with locale casing.
func (nc *NameController) Titlecase(c *gin.Context) {
	var req requests.TitlecaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	result, err := nc.nameService.Titlecase(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "CONTEXT_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.TitlecaseResponse{Name: req.Name, Result: result})
}

// Fold strips diacritics from one string.
func (nc *NameController) Fold(c *gin.Context) {
	var req requests.FoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.FoldResponse{
		Name:   req.Name,
		Result: nc.nameService.Fold(req.Name),
	})
}

// Match runs the linker for one primary against ordered candidates.
func (nc *NameController) Match(c *gin.Context) {
	var req requests.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	start := time.Now()
	key := nc.nameService.Fingerprint(req)

	if req.UseCache {
		if cached, found, err := nc.cache.Get(c.Request.Context(), key); err == nil && found {
			c.JSON(http.StatusOK, responses.MatchResponse{
				Result:           *cached,
				CacheHit:         true,
				ProcessingTimeMs: time.Since(start).Milliseconds(),
			})
			return
		}
	}

	result, err := nc.nameService.Match(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "MATCH_ERROR",
			Message: err.Error(),
		})
		return
	}

	if req.UseCache {
		if err := nc.cache.Set(c.Request.Context(), key, result); err != nil {
			nc.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, responses.MatchResponse{
		Result:           *result,
		CacheHit:         false,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// HealthCheck answers liveness probes.
func (nc *NameController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
