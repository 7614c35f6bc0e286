package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/flagx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath string         `json:"database_path"`
	LogLevel     string         `json:"log_level"`
	LogPretty    *bool          `json:"log_pretty"`
	PriceBaseURL string         `json:"price_base_url"`
	PriceTimeout timex.Duration `json:"price_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Fields absent from the file keep their current values. Panics on read or
// unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogPretty != nil {
		cfg.LogPretty = *jc.LogPretty
	}
	if jc.PriceBaseURL != "" {
		cfg.PriceBaseURL = jc.PriceBaseURL
	}
	if jc.PriceTimeout != 0 {
		cfg.PriceTimeout = time.Duration(jc.PriceTimeout)
	}
}
