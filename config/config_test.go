package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("NUTRISCAN_SERVER_PORT")
		os.Unsetenv("NUTRISCAN_SERVER_ENVIRONMENT")
		os.Unsetenv("NUTRISCAN_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("NUTRISCAN_FDC_API_KEY")
		os.Unsetenv("NUTRISCAN_FDC_BASE_URL")
		os.Unsetenv("NUTRISCAN_STORE_TYPE")
		os.Unsetenv("NUTRISCAN_STORE_PATH")
		os.Unsetenv("NUTRISCAN_STORE_DATASET_PATH")
		os.Unsetenv("NUTRISCAN_CLASSIFIER_BASE_URL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API key
		os.Setenv("NUTRISCAN_FDC_API_KEY", "test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.FDC.BaseURL != "https://api.nal.usda.gov/fdc" {
			t.Errorf("FDC.BaseURL = %s, want https://api.nal.usda.gov/fdc", cfg.FDC.BaseURL)
		}
		if cfg.Store.Type != "sqlite" {
			t.Errorf("Store.Type = %s, want sqlite", cfg.Store.Type)
		}
		if cfg.Store.Path != "data/foods.db" {
			t.Errorf("Store.Path = %s, want data/foods.db", cfg.Store.Path)
		}
		if cfg.Classifier.BaseURL != "http://localhost:8001" {
			t.Errorf("Classifier.BaseURL = %s, want http://localhost:8001", cfg.Classifier.BaseURL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_SERVER_PORT", "9090")
		os.Setenv("NUTRISCAN_SERVER_ENVIRONMENT", "production")
		os.Setenv("NUTRISCAN_FDC_API_KEY", "custom-api-key")
		os.Setenv("NUTRISCAN_FDC_BASE_URL", "https://custom.api.com")
		os.Setenv("NUTRISCAN_STORE_TYPE", "dataset")
		os.Setenv("NUTRISCAN_STORE_DATASET_PATH", "/data/bundled.json")
		os.Setenv("NUTRISCAN_CLASSIFIER_BASE_URL", "http://recognizer:9000")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.FDC.APIKey != "custom-api-key" {
			t.Errorf("FDC.APIKey = %s, want custom-api-key", cfg.FDC.APIKey)
		}
		if cfg.FDC.BaseURL != "https://custom.api.com" {
			t.Errorf("FDC.BaseURL = %s, want https://custom.api.com", cfg.FDC.BaseURL)
		}
		if cfg.Store.Type != "dataset" {
			t.Errorf("Store.Type = %s, want dataset", cfg.Store.Type)
		}
		if cfg.Store.DatasetPath != "/data/bundled.json" {
			t.Errorf("Store.DatasetPath = %s, want /data/bundled.json", cfg.Store.DatasetPath)
		}
		if cfg.Classifier.BaseURL != "http://recognizer:9000" {
			t.Errorf("Classifier.BaseURL = %s, want http://recognizer:9000", cfg.Classifier.BaseURL)
		}
	})

	t.Run("fails without API key", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want missing API key error")
		}
	})

	t.Run("fails with unknown store type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_FDC_API_KEY", "test-key")
		os.Setenv("NUTRISCAN_STORE_TYPE", "postgres")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want store type error")
		}
	})
}
