package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External services
	ScoutGPT ScoutGPTConfig

	// Data-links file (endpoints / dataset mappings / contracts)
	DataLinksPath string

	// Analysis engine
	Analysis AnalysisConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ScoutGPTConfig holds the classification oracle configuration
type ScoutGPTConfig struct {
	Endpoint      string // overrides the data-links endpoint when set
	Timeout       time.Duration
	RateLimit     float64 // requests per second
	RateBurst     int
	ContextCounty string // default context attached to oracle calls
}

// AnalysisConfig holds engine policy switches
type AnalysisConfig struct {
	BandPolicy     string // standard | granular
	FloodPolicy    string // auto | zone | geometric
	ClampScore     bool   // clamp investment score into [0,100]
	BatchLimit     int    // max records per batch analysis call
	ResultStoreTTL time.Duration
}

// SchedulerConfig holds cron job configuration
type SchedulerConfig struct {
	Enabled         bool
	RetentionDays   int    // interaction log retention
	RetentionCron   string // cron spec for the retention job
	ResultSweepCron string // cron spec for the result-store sweep
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		ScoutGPT: ScoutGPTConfig{
			Endpoint:      getEnv("SCOUTGPT_ENDPOINT", ""),
			Timeout:       getEnvAsDuration("SCOUTGPT_TIMEOUT", "30s"),
			RateLimit:     getEnvAsFloat("SCOUTGPT_RATE_LIMIT", 5),
			RateBurst:     getEnvAsInt("SCOUTGPT_RATE_BURST", 10),
			ContextCounty: getEnv("SCOUTGPT_CONTEXT_COUNTY", ""),
		},

		DataLinksPath: getEnv("DATA_LINKS_PATH", "config/data_links.yaml"),

		Analysis: AnalysisConfig{
			BandPolicy:     getEnv("ANALYSIS_BAND_POLICY", "standard"),
			FloodPolicy:    getEnv("ANALYSIS_FLOOD_POLICY", "auto"),
			ClampScore:     getEnvAsBool("ANALYSIS_CLAMP_SCORE", false),
			BatchLimit:     getEnvAsInt("ANALYSIS_BATCH_LIMIT", 50),
			ResultStoreTTL: getEnvAsDuration("ANALYSIS_RESULT_TTL", "30m"),
		},

		Scheduler: SchedulerConfig{
			Enabled:         getEnvAsBool("SCHEDULER_ENABLED", true),
			RetentionDays:   getEnvAsInt("AI_LOG_RETENTION_DAYS", 90),
			RetentionCron:   getEnv("AI_LOG_RETENTION_CRON", "0 3 * * *"),
			ResultSweepCron: getEnv("RESULT_SWEEP_CRON", "*/10 * * * *"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Analysis.BandPolicy {
	case "standard", "granular":
	default:
		return fmt.Errorf("ANALYSIS_BAND_POLICY must be standard or granular")
	}

	switch c.Analysis.FloodPolicy {
	case "auto", "zone", "geometric":
	default:
		return fmt.Errorf("ANALYSIS_FLOOD_POLICY must be auto, zone or geometric")
	}

	if c.Analysis.BatchLimit <= 0 {
		return fmt.Errorf("ANALYSIS_BATCH_LIMIT must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to the executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
