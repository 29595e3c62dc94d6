package config

import (
	"os"
	"strconv"
)

// Config holds engine and collaborator settings loaded from the environment.
type Config struct {
	Symbol              string
	IndicatorProfile    string
	FundamentalsAPIKey  string
	FundamentalsBaseURL string
	RequestTimeout      int // seconds
	RequestsPerSec      int
	LogLevel            string
}

// Load reads configuration from environment variables, applying defaults for
// anything unset.
func Load() *Config {
	cfg := &Config{
		Symbol:              getEnv("SYMBOL", "AAPL"),
		IndicatorProfile:    getEnv("INDICATOR_PROFILE", "balanced"),
		FundamentalsAPIKey:  os.Getenv("FUNDAMENTALS_API_KEY"),
		FundamentalsBaseURL: getEnv("FUNDAMENTALS_BASE_URL", "https://api.quantora.dev"),
		RequestTimeout:      getEnvInt("REQUEST_TIMEOUT", 30),
		RequestsPerSec:      getEnvInt("REQUESTS_PER_SEC", 5),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
