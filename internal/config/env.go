package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	defaultFreeTierCredits = 500000
	defaultStoreTimeout    = 5 * time.Second
	defaultGatewayTimeout  = 10 * time.Second
	defaultRateLimit       = "30-M"
	defaultCurrency        = "INR"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Environment:       os.Getenv("ENVIRONMENT"),
		Port:              os.Getenv("PORT"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		StorageDriver:     strings.ToLower(os.Getenv("STORAGE_DRIVER")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecretKey: os.Getenv("RAZORPAY_SECRET_KEY"),
		Currency:          os.Getenv("CURRENCY"),
		RateLimit:         os.Getenv("RATE_LIMIT"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.StorageDriver == "" {
		cfg.StorageDriver = StoragePostgres
	}

	if cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageMemory {
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.StorageDriver)
	}

	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// the signing secret is needed even with in-memory storage, signatures are always checked
	if cfg.RazorpaySecretKey == "" {
		return nil, fmt.Errorf("RAZORPAY_SECRET_KEY environment variable is required")
	}

	if cfg.RazorpayKeyID == "" && !cfg.InMemory() {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID environment variable is required")
	}

	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	var err error

	if cfg.FreeTierCredits, err = intEnv("FREE_TIER_CREDITS", defaultFreeTierCredits); err != nil {
		return nil, err
	}

	if cfg.FreeTierCredits <= 0 {
		return nil, fmt.Errorf("FREE_TIER_CREDITS must be positive")
	}

	if cfg.StoreTimeout, err = durationEnv("STORE_TIMEOUT", defaultStoreTimeout); err != nil {
		return nil, err
	}

	if cfg.GatewayTimeout, err = durationEnv("GATEWAY_TIMEOUT", defaultGatewayTimeout); err != nil {
		return nil, err
	}

	if cfg.QuotaFailOpen, err = boolEnv("QUOTA_FAIL_OPEN", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intEnv(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}

	return v, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}

	return v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
