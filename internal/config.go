package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	BaseURL  string

	// Backend is the remote storefront API that owns all durable state
	// (OTP, coupons, leads, orders).
	Backend BackendConfig

	Checkout CheckoutConfig
	Sentry   SentryConfig
}

// BackendConfig holds connection settings for the remote storefront API.
type BackendConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CheckoutConfig holds tunables for the checkout core.
type CheckoutConfig struct {
	// OTPResendCooldown is how long resend stays disabled after a send.
	OTPResendCooldown time.Duration

	// LeadDebounce is the input-inactivity window before a lead save fires.
	LeadDebounce time.Duration

	// LeadMinPhoneLen gates lead capture until the phone looks real.
	LeadMinPhoneLen int
}

// SentryConfig holds configuration for Sentry error tracking
type SentryConfig struct {
	DSN         string
	Enabled     bool
	Environment string
	Release     string
	SampleRate  float64
	Debug       bool
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		BaseURL:  getEnv("BASE_URL", "http://localhost:3000"),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8080/api/v1"),
			APIKey:  getEnv("BACKEND_API_KEY", ""),
			Timeout: getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
		},
		Checkout: CheckoutConfig{
			OTPResendCooldown: getEnvDuration("OTP_RESEND_COOLDOWN", 60*time.Second),
			LeadDebounce:      getEnvDuration("LEAD_DEBOUNCE", 1500*time.Millisecond),
			LeadMinPhoneLen:   int(getEnvInt("LEAD_MIN_PHONE_LEN", 11)),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Enabled:     getEnvBool("SENTRY_ENABLED", false),
			Environment: getEnv("SENTRY_ENVIRONMENT", "development"),
			Release:     getEnv("SENTRY_RELEASE", ""),
			SampleRate:  getEnvFloat("SENTRY_SAMPLE_RATE", 1.0),
			Debug:       getEnvBool("SENTRY_DEBUG", false),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL must be set")
	}
	if cfg.Env == "prod" && cfg.Backend.APIKey == "" {
		return nil, fmt.Errorf("BACKEND_API_KEY must be set in production environment")
	}
	if cfg.Checkout.OTPResendCooldown <= 0 {
		return nil, fmt.Errorf("OTP_RESEND_COOLDOWN must be positive")
	}
	if cfg.Checkout.LeadDebounce <= 0 {
		return nil, fmt.Errorf("LEAD_DEBOUNCE must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
