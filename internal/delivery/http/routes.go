package http

import (
	"github.com/gin-gonic/gin"

	"github.com/drinkslane/backend/config"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.GetCatalog)
			catalog.GET("/suggest", handler.Suggest)
			catalog.GET("/categories", handler.ListCategories)
			catalog.POST("/refresh", handler.RefreshCatalog)
		}
		v1.GET("/products/:id/image", handler.GetProductImage)
	}

	return router
}
