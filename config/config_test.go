package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		ConfigFileEnv, "PORT", "APP_ENV", "RESULTS_CSV_PATH", "SQLITE_PATH", "RESULTS_TABLE",
		"DATABASE_URL", "INSTAGRAM_BASE_URL", "INSTAGRAM_APP_ID", "INSTAGRAM_SESSION_ID", "FETCH_TIMEOUT_SECS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "account_analysis_results.csv", cfg.ResultsCSVPath)
	assert.Equal(t, "account_analysis.db", cfg.SQLitePath)
	assert.Equal(t, "account_analysis", cfg.ResultsTable)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9090\"\nresults_table: history\nfetch_timeout_secs: 5\nsqlite_path: /tmp/a.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("SQLITE_PATH", "/tmp/b.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "history", cfg.ResultsTable)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "/tmp/b.db", cfg.SQLitePath)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = "0" }},
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"empty csv path", func(c *Config) { c.ResultsCSVPath = "" }},
		{"empty sqlite path", func(c *Config) { c.SQLitePath = "" }},
		{"table injection", func(c *Config) { c.ResultsTable = "t; DROP TABLE x" }},
		{"zero timeout", func(c *Config) { c.FetchTimeoutSecs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Defaults().Validate())
}
