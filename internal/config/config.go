package config

import "time"

// Config holds runtime settings for the Investify CLI.
//
// Fields:
//   - DatabasePath: filesystem path of the local SQLite database.
//   - LogLevel: minimum log level (trace, debug, info, warn, error).
//   - LogPretty: human-readable console output instead of JSON lines.
//   - PriceBaseURL: base URL of the crypto price API.
//   - PriceTimeout: per-request timeout for price lookups.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogPretty    bool
	PriceBaseURL string
	PriceTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "investify.db"
	c.LogLevel = "warn"
	c.LogPretty = true
	c.PriceBaseURL = "https://api.coingecko.com/api/v3"
	c.PriceTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
