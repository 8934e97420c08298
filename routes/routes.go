package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/street-conflate/app/controllers"
	"github.com/street-conflate/helpers/utils"
)

// RequestID tags every request so log lines correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateShortID()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// SetupAPIRoutes wires the versioned API.
func SetupAPIRoutes(router *gin.Engine, nameController *controllers.NameController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		names := v1.Group("/names")
		{
			names.POST("/tokenize", nameController.Tokenize)
			names.POST("/titlecase", nameController.Titlecase)
			names.POST("/fold", nameController.Fold)
			names.POST("/match", nameController.Match)
		}

		streets := v1.Group("/streets")
		{
			streets.GET("/search", adminController.SearchStreets)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/cache/stats", adminController.CacheStats)
			admin.POST("/cache/clear", adminController.CacheClear)
		}

		v1.GET("/health", nameController.HealthCheck)
	}
}

// SetupHealthRoutes wires root level probes.
func SetupHealthRoutes(router *gin.Engine, nameController *controllers.NameController) {
	router.GET("/health", nameController.HealthCheck)
	router.GET("/ready", nameController.HealthCheck)
	router.GET("/live", nameController.HealthCheck)
}

// SetupAllRoutes wires everything plus the 404 handler.
func SetupAllRoutes(router *gin.Engine, nameController *controllers.NameController, adminController *controllers.AdminController) {
	router.Use(RequestID())

	SetupHealthRoutes(router, nameController)
	SetupAPIRoutes(router, nameController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
