package http

import (
	"github.com/gin-gonic/gin"
	"github.com/quotewatch/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		schedule := v1.Group("/schedule")
		{
			schedule.POST("/run", handler.RunSchedule)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.POST("/top", handler.TopQuotes)
		}
	}

	return router
}
