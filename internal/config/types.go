package config

import "time"

type Config struct {
	Environment string
	Port        string
	LogLevel    string

	// storage
	StorageDriver string // "postgres" or "memory"
	DatabaseURL   string
	RedisURL      string
	StoreTimeout  time.Duration

	// payment gateway
	RazorpayKeyID     string
	RazorpaySecretKey string
	Currency          string
	GatewayTimeout    time.Duration

	// credits
	FreeTierCredits int64
	QuotaFailOpen   bool

	// http
	RateLimit      string // ulule/limiter formatted rate, e.g. "30-M"
	AllowedOrigins []string
	JWTSecret      string
}

type Flags struct {
	Migrate bool
	Addr    string
}

// reports whether durable stores are disabled
func (c *Config) InMemory() bool {
	return c.StorageDriver == StorageMemory
}
