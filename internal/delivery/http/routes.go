package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		nutrition := v1.Group("/nutrition")
		{
			nutrition.GET("/search/:name", handler.SearchByName)
			nutrition.GET("/barcode/:code", handler.SearchByBarcode)
			nutrition.POST("/image", handler.IdentifyFromImage)
		}

		image := v1.Group("/image")
		{
			image.POST("/recognize", handler.RecognizeImage)
			image.POST("/recognize-and-save", handler.RecognizeAndSave)
		}

		predictions := v1.Group("/predictions")
		{
			predictions.GET("/:userId", handler.ListPredictions)
			predictions.GET("/:userId/:predictionId", handler.GetPrediction)
			predictions.DELETE("/:userId/:predictionId", handler.DeletePrediction)
		}
	}

	return router
}
