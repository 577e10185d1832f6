package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"datalens/internal/analysis"
	"datalens/internal/errors"
	"datalens/internal/viz"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Hub      HubConfig
	Cache    CacheConfig
	Viz      VizConfig
	Datasets DatasetsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// HubConfig holds dataset loader settings
type HubConfig struct {
	APIBaseURL string // datasets-server API root
	HubBaseURL string // hub root, used for dataset card fetches
	MaxRows    int    // row cap per loaded dataset
	PageSize   int    // rows per /rows request
	Timeout    time.Duration
}

// CacheConfig holds dataset cache settings
type CacheConfig struct {
	TTL time.Duration
}

// VizConfig holds visualization defaults
type VizConfig struct {
	HistogramBins int
	TopN          int
}

// DatasetsConfig holds the suggested-dataset list shown in the sidebar
type DatasetsConfig struct {
	File      string
	Suggested []string
}

// Splits a dataset may be loaded from.
var Splits = []string{"train", "test", "validation"}

// ValidSplit reports whether s is a known split selector.
func ValidSplit(s string) bool {
	for _, split := range Splits {
		if s == split {
			return true
		}
	}
	return false
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Hub: HubConfig{
			APIBaseURL: getEnvOrDefault("HUB_API_URL", "https://datasets-server.huggingface.co"),
			HubBaseURL: getEnvOrDefault("HUB_URL", "https://huggingface.co"),
			MaxRows:    getEnvIntOrDefault("HUB_MAX_ROWS", 10000),
			PageSize:   getEnvIntOrDefault("HUB_PAGE_SIZE", 100),
			Timeout:    getEnvDurationOrDefault("HUB_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			TTL: getEnvDurationOrDefault("CACHE_TTL", 6*time.Hour),
		},
		Viz: VizConfig{
			HistogramBins: getEnvIntOrDefault("VIZ_BINS", viz.DefaultBins),
			TopN:          getEnvIntOrDefault("VIZ_TOP_N", analysis.DefaultTopN),
		},
		Datasets: DatasetsConfig{
			File: getEnvOrDefault("DATASETS_FILE", ""),
		},
	}

	suggested, err := loadSuggestedDatasets(config.Datasets.File)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load suggested datasets")
	}
	config.Datasets.Suggested = suggested

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// datasetsFile is the YAML shape of the optional suggested-datasets file.
type datasetsFile struct {
	Suggested []string `yaml:"suggested"`
}

// loadSuggestedDatasets reads the sidebar suggestion list from a YAML file,
// falling back to built-in defaults when no file is configured.
func loadSuggestedDatasets(path string) ([]string, error) {
	if path == "" {
		return []string{
			"nitaibezerra/govbrnews-reduced",
			"nitaibezerra/govbrnews",
		}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigInvalid("datasets file not readable: " + path)
	}

	var file datasetsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "datasets file is not valid YAML")
	}
	if len(file.Suggested) == 0 {
		return nil, errors.ConfigInvalid("datasets file lists no suggested datasets")
	}
	return file.Suggested, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Hub.APIBaseURL == "" {
		return errors.ConfigInvalid("hub API URL is required")
	}
	if config.Hub.MaxRows <= 0 {
		return errors.ConfigInvalid("HUB_MAX_ROWS must be positive")
	}
	if config.Hub.PageSize <= 0 {
		return errors.ConfigInvalid("HUB_PAGE_SIZE must be positive")
	}
	if config.Cache.TTL <= 0 {
		return errors.ConfigInvalid("CACHE_TTL must be positive")
	}
	if config.Viz.HistogramBins < viz.MinBins || config.Viz.HistogramBins > viz.MaxBins {
		return errors.ConfigInvalid("VIZ_BINS must be between 10 and 100")
	}
	if config.Viz.TopN < analysis.MinTopN || config.Viz.TopN > analysis.MaxTopN {
		return errors.ConfigInvalid("VIZ_TOP_N must be between 5 and 50")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
