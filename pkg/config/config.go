package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	ProviderTimeout time.Duration
	SyncRateLimit   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PROVIDER_TIMEOUT", "30s")
	viper.SetDefault("SYNC_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	// Timeout applied to every outbound provider HTTP call
	timeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.ProviderTimeout = timeout

	// ulule/limiter formatted rate, e.g. "10-M" for 10 requests per minute
	cfg.SyncRateLimit = viper.GetString("SYNC_RATE_LIMIT")

	return cfg, nil
}
