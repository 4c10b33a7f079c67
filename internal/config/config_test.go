package config

import (
	"testing"
	"time"
)

const testKey = "0f3c7d2a-5b1e-4c8f-9a6d-2e4b8c1f7a3d"

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name:    "valid config",
			envVars: map[string]string{"ZENSERP_API_KEY": testKey},
			wantErr: nil,
		},
		{
			name:    "missing api key",
			envVars: map[string]string{},
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "zero timeout",
			envVars: map[string]string{
				"ZENSERP_API_KEY":     testKey,
				"ZENSERP_TIMEOUT_SEC": "0",
			},
			wantErr: ErrInvalidTimeout,
		},
		{
			name: "negative rate limit",
			envVars: map[string]string{
				"ZENSERP_API_KEY":       testKey,
				"RATE_LIMIT_PER_MINUTE": "-1",
			},
			wantErr: ErrInvalidRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error = %v", err)
				return
			}

			if cfg == nil {
				t.Error("Load() returned nil config")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ZENSERP_API_KEY", testKey)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Zenserp.BaseURL != "https://app.zenserp.com/api/v2" {
		t.Errorf("Zenserp.BaseURL = %v", cfg.Zenserp.BaseURL)
	}
	if cfg.Zenserp.Timeout != 30*time.Second {
		t.Errorf("Zenserp.Timeout = %v, want 30s", cfg.Zenserp.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want info", cfg.Log.Level)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.RateLimit.RequestsPerMinute != 60 {
		t.Errorf("RateLimit.RequestsPerMinute = %v, want 60", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Database.URL = %q, want empty", cfg.Database.URL)
	}
	if cfg.Metrics.TextfilePath != "" {
		t.Errorf("Metrics.TextfilePath = %q, want empty", cfg.Metrics.TextfilePath)
	}
	if cfg.Cache.Dir != defaultCacheDir() {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, defaultCacheDir())
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ZENSERP_BASE_URL", "http://localhost:8080")
	t.Setenv("ZENSERP_TIMEOUT_SEC", "5")
	t.Setenv("CACHE_TTL_SEC", "60")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/zenserp")
	t.Setenv("METRICS_TEXTFILE", "/tmp/zenserp.prom")
	t.Setenv("ZENSERP_CACHE_DIR", "/tmp/zenserp-cache")

	cfg := FromEnv()

	if cfg.Cache.Dir != "/tmp/zenserp-cache" {
		t.Errorf("Cache.Dir = %v", cfg.Cache.Dir)
	}

	if cfg.Zenserp.BaseURL != "http://localhost:8080" {
		t.Errorf("Zenserp.BaseURL = %v", cfg.Zenserp.BaseURL)
	}
	if cfg.Zenserp.Timeout != 5*time.Second {
		t.Errorf("Zenserp.Timeout = %v, want 5s", cfg.Zenserp.Timeout)
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("Cache.TTL = %v, want 1m", cfg.Cache.TTL)
	}
	if cfg.Database.URL != "postgres://localhost:5432/zenserp" {
		t.Errorf("Database.URL = %v", cfg.Database.URL)
	}
	if cfg.Metrics.TextfilePath != "/tmp/zenserp.prom" {
		t.Errorf("Metrics.TextfilePath = %v", cfg.Metrics.TextfilePath)
	}

	// ключ может прийти флагом после FromEnv
	if err := cfg.Validate(); err != ErrMissingAPIKey {
		t.Errorf("Validate() error = %v, want ErrMissingAPIKey", err)
	}
	cfg.Zenserp.APIKey = testKey
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v after setting key", err)
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		want       int
	}{
		{"valid int", "42", 10, 42},
		{"empty string", "", 10, 10},
		{"invalid int", "abc", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.envValue)

			got := getEnvIntOrDefault("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvIntOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"ZENSERP_API_KEY",
		"ZENSERP_BASE_URL",
		"ZENSERP_TIMEOUT_SEC",
		"DATABASE_URL",
		"LOG_LEVEL",
		"CACHE_TTL_SEC",
		"RATE_LIMIT_PER_MINUTE",
		"METRICS_TEXTFILE",
		"ZENSERP_CACHE_DIR",
	}
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}
