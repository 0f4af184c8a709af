package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/nutriscan/backend/config"
	httpDelivery "github.com/nutriscan/backend/internal/delivery/http"
	"github.com/nutriscan/backend/internal/domain"
	"github.com/nutriscan/backend/internal/infrastructure/classifier"
	"github.com/nutriscan/backend/internal/infrastructure/dataset"
	"github.com/nutriscan/backend/internal/infrastructure/fdc"
	"github.com/nutriscan/backend/internal/infrastructure/store"
	"github.com/nutriscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting nutriscan backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Type),
	)

	// Local food source: SQLite store or bundled dataset file
	local, err := newLocalSource(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open local food source", zap.Error(err))
	}

	fdcClient := fdc.NewClient(cfg.FDC.APIKey, cfg.FDC.BaseURL, logger)
	logger.Info("FDC API configured", zap.String("base_url", cfg.FDC.BaseURL))

	resolver := usecase.NewResolver(local, fdcClient, logger)
	classifierClient := classifier.NewClient(cfg.Classifier.BaseURL, logger)
	predictions := usecase.NewPredictionService()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver, classifierClient, predictions, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newLocalSource(cfg *config.Config, logger *zap.Logger) (domain.FoodSource, error) {
	switch cfg.Store.Type {
	case "dataset":
		return dataset.New(cfg.Store.DatasetPath, logger), nil
	default:
		return store.Open(cfg.Store.Path, logger)
	}
}
