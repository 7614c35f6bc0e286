package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig is a DTO used exclusively for environment lookups. Fields are
// copied into the runtime Config only when the variable is actually set.
type envConfig struct {
	DatabasePath string        `env:"INVESTIFY_DATABASE_PATH"`
	LogLevel     string        `env:"INVESTIFY_LOG_LEVEL"`
	LogPretty    *bool         `env:"INVESTIFY_LOG_PRETTY"`
	PriceBaseURL string        `env:"INVESTIFY_PRICE_BASE_URL"`
	PriceTimeout time.Duration `env:"INVESTIFY_PRICE_TIMEOUT"`
}

// parseEnv overlays Config with values from INVESTIFY_* environment
// variables. Unset variables leave the corresponding field untouched.
// Panics on malformed values (caller should recover if desired).
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(err)
	}

	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.LogPretty != nil {
		cfg.LogPretty = *ec.LogPretty
	}
	if ec.PriceBaseURL != "" {
		cfg.PriceBaseURL = ec.PriceBaseURL
	}
	if ec.PriceTimeout != 0 {
		cfg.PriceTimeout = ec.PriceTimeout
	}
}
