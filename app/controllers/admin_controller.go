package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/street-conflate/app/responses"
	"github.com/street-conflate/app/services"
	"github.com/street-conflate/internal/search"
)

// AdminController serves cache management and street search.
type AdminController struct {
	cache    services.MatchCache
	searcher *search.StreetSearcher
	logger   *zap.Logger
}

// NewAdminController wires the controller.
func NewAdminController(cache services.MatchCache, searcher *search.StreetSearcher, logger *zap.Logger) *AdminController {
	return &AdminController{
		cache:    cache,
		searcher: searcher,
		logger:   logger,
	}
}

// CacheStats reports cache effectiveness.
func (ac *AdminController) CacheStats(c *gin.Context) {
	stats, err := ac.cache.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CacheClear empties the match cache.
func (ac *AdminController) CacheClear(c *gin.Context) {
	if err := ac.cache.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: err.Error(),
		})
		return
	}
	ac.logger.Info("match cache cleared")
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// SearchStreets looks up street names by free text.
func (ac *AdminController) SearchStreets(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	hits, err := ac.searcher.Search(query, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "SEARCH_ERROR",
			Message: err.Error(),
		})
		return
	}

	out := responses.StreetSearchResponse{Query: query, Hits: make([]responses.StreetSearchHit, 0, len(hits))}
	for _, hit := range hits {
		out.Hits = append(out.Hits, responses.StreetSearchHit{
			ID:      hit.ID,
			Display: hit.Display,
			Score:   hit.Score,
		})
	}
	c.JSON(http.StatusOK, out)
}
