package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	FDC        FDCConfig
	Store      StoreConfig
	Classifier ClassifierConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FDCConfig holds FoodData Central API configuration
type FDCConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// StoreConfig selects and locates the local food source
type StoreConfig struct {
	Type        string `mapstructure:"type"` // "sqlite" or "dataset"
	Path        string `mapstructure:"path"`
	DatasetPath string `mapstructure:"dataset_path"`
}

// ClassifierConfig holds the image-recognition service location
type ClassifierConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriscan/")

	// Environment variable settings
	v.SetEnvPrefix("NUTRISCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// FDC defaults
	v.SetDefault("fdc.base_url", "https://api.nal.usda.gov/fdc")

	// Store defaults
	v.SetDefault("store.type", "sqlite")
	v.SetDefault("store.path", "data/foods.db")
	v.SetDefault("store.dataset_path", "data/nutrition_data.json")

	// Classifier defaults
	v.SetDefault("classifier.base_url", "http://localhost:8001")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.FDC.APIKey == "" {
		return fmt.Errorf("FDC API key is required (set NUTRISCAN_FDC_API_KEY)")
	}

	if config.Store.Type != "sqlite" && config.Store.Type != "dataset" {
		return fmt.Errorf("store type must be 'sqlite' or 'dataset', got: %s", config.Store.Type)
	}

	if config.Store.Type == "dataset" && config.Store.DatasetPath == "" {
		return fmt.Errorf("dataset path is required when store type is 'dataset'")
	}

	return nil
}
