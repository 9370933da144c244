package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	Feed  FeedConfig
	Cache CacheConfig
	Score ScoreConfig
	API   APIConfig
}

// FeedConfig holds object-store feed configuration
type FeedConfig struct {
	// PrimaryURL points at the daily trading CSV.
	PrimaryURL string
	// SectorURL points at the stock-to-sector mapping CSV. Optional: an
	// empty URL or a failed fetch degrades to empty sector assignment.
	SectorURL    string
	FetchTimeout time.Duration
}

// CacheConfig holds the enriched-dataset cache configuration
type CacheConfig struct {
	TTL time.Duration
}

// ScoreConfig holds the composite score weights
type ScoreConfig struct {
	Accumulation     int
	ForeignInflow    int
	VolumeFactorHigh int
	VolumeFactorMid  int
	AboveVWAP        int
	WeeklyVolumeUp   int
	UnusualVolume    int

	// Volume factor thresholds for the tiered weights.
	VolumeFactorHighLevel float64
	VolumeFactorMidLevel  float64
}

// APIConfig holds REST API configuration
type APIConfig struct {
	Port            int
	HealthCheckPort int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	DefaultTopN     int
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory or parent directories
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Feed: FeedConfig{
			PrimaryURL:   getEnv("FEED_PRIMARY_URL", ""),
			SectorURL:    getEnv("FEED_SECTOR_URL", ""),
			FetchTimeout: getEnvAsDuration("FEED_FETCH_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 1*time.Hour),
		},
		Score: ScoreConfig{
			Accumulation:          getEnvAsInt("SCORE_ACCUMULATION", 30),
			ForeignInflow:         getEnvAsInt("SCORE_FOREIGN_INFLOW", 25),
			VolumeFactorHigh:      getEnvAsInt("SCORE_VOLUME_FACTOR_HIGH", 20),
			VolumeFactorMid:       getEnvAsInt("SCORE_VOLUME_FACTOR_MID", 10),
			AboveVWAP:             getEnvAsInt("SCORE_ABOVE_VWAP", 15),
			WeeklyVolumeUp:        getEnvAsInt("SCORE_WEEKLY_VOLUME_UP", 10),
			UnusualVolume:         getEnvAsInt("SCORE_UNUSUAL_VOLUME", 10),
			VolumeFactorHighLevel: getEnvAsFloat("SCORE_VOLUME_FACTOR_HIGH_LEVEL", 2.5),
			VolumeFactorMidLevel:  getEnvAsFloat("SCORE_VOLUME_FACTOR_MID_LEVEL", 1.5),
		},
		API: APIConfig{
			Port:            getEnvAsInt("API_PORT", 8080),
			HealthCheckPort: getEnvAsInt("API_HEALTH_PORT", 8081),
			ReadTimeout:     getEnvAsDuration("API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("API_WRITE_TIMEOUT", 30*time.Second),
			DefaultTopN:     getEnvAsInt("API_DEFAULT_TOP_N", 25),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Feed.PrimaryURL == "" {
		return fmt.Errorf("FEED_PRIMARY_URL is required")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Score.VolumeFactorMidLevel > c.Score.VolumeFactorHighLevel {
		return fmt.Errorf("SCORE_VOLUME_FACTOR_MID_LEVEL must not exceed SCORE_VOLUME_FACTOR_HIGH_LEVEL")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
