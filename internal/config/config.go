package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	ErrMissingAPIKey    = errors.New("ZENSERP_API_KEY is required")
	ErrInvalidTimeout   = errors.New("ZENSERP_TIMEOUT_SEC must be positive")
	ErrInvalidRateLimit = errors.New("RATE_LIMIT_PER_MINUTE must be positive")
)

const defaultBaseURL = "https://app.zenserp.com/api/v2"

type Config struct {
	Zenserp   ZenserpConfig
	Database  DatabaseConfig
	Log       LogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type ZenserpConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig - история поисков; пустой URL выключает ее.
type DatabaseConfig struct {
	URL string
}

type LogConfig struct {
	Level string
	// Debug выставляется флагом --debug и перекрывает Level.
	Debug bool
}

// CacheConfig - кеш справочников и журнал лимита на диске. Пустой Dir выключает их.
type CacheConfig struct {
	TTL time.Duration
	Dir string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type MetricsConfig struct {
	TextfilePath string
}

// Load читает окружение и валидирует результат.
func Load() (*Config, error) {
	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv читает окружение без валидации: CLI сначала накладывает флаги, потом зовет Validate.
func FromEnv() *Config {
	return &Config{
		Zenserp: ZenserpConfig{
			APIKey:  os.Getenv("ZENSERP_API_KEY"),
			BaseURL: getEnvOrDefault("ZENSERP_BASE_URL", defaultBaseURL),
			Timeout: time.Duration(getEnvIntOrDefault("ZENSERP_TIMEOUT_SEC", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 3600)) * time.Second,
			Dir: getEnvOrDefault("ZENSERP_CACHE_DIR", defaultCacheDir()),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		},
		Metrics: MetricsConfig{
			TextfilePath: os.Getenv("METRICS_TEXTFILE"),
		},
	}
}

func (c *Config) Validate() error {
	if c.Zenserp.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Zenserp.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

// defaultCacheDir - <user cache dir>/zenserp, или "" если у пользователя его нет.
func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zenserp")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
