package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "investify.db", c.DatabasePath)
	assert.Equal(t, "warn", c.LogLevel)
	assert.True(t, c.LogPretty)
	assert.Equal(t, "https://api.coingecko.com/api/v3", c.PriceBaseURL)
	assert.Equal(t, 10*time.Second, c.PriceTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "investify.db", cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-f", "/tmp/alt.db", "-l", "debug"}, expectPanic: false,
			expected: &Config{DatabasePath: "/tmp/alt.db", LogLevel: "debug"}},
		{name: "Test2 unrelated flags ignored", args: []string{"cmd", "-x", "1"}, expectPanic: false,
			expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from flags", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"database_path": "/data/investify.db",
			"log_level":     "info",
			"log_pretty":    false,
			"price_timeout": "30s",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/data/investify.db", cfg.DatabasePath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.LogPretty)
		assert.Equal(t, 30*time.Second, cfg.PriceTimeout)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"log_level": "debug"})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "investify.db", cfg.DatabasePath)
		assert.True(t, cfg.LogPretty)
	})

	t.Run("no config flag requires no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DatabasePath: "keep.db", LogLevel: "error"}
		parseJson(cfg)

		assert.Equal(t, "keep.db", cfg.DatabasePath)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("INVESTIFY_DATABASE_PATH", "/env/investify.db")
	t.Setenv("INVESTIFY_LOG_PRETTY", "false")
	t.Setenv("INVESTIFY_PRICE_TIMEOUT", "5s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/env/investify.db", cfg.DatabasePath)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 5*time.Second, cfg.PriceTimeout)
	assert.Equal(t, "warn", cfg.LogLevel, "unset variable leaves default")
}
