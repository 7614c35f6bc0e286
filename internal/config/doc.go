// Package config loads runtime configuration for the Investify CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables with the INVESTIFY_ prefix (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-f string   path to the local database file
//	-l string   minimum log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "database_path": "investify.db",
//	  "log_level": "warn",
//	  "log_pretty": true,
//	  "price_base_url": "https://api.coingecko.com/api/v3",
//	  "price_timeout": "10s"
//	}
//
// Primary API
//
//   - type Config                     — holds database, logging and price API settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
