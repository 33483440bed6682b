package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty values count as unset.
	t.Setenv("KHATA_ADDR", "")
	t.Setenv("KHATA_DB", "")
	t.Setenv("KHATA_FISCAL_YEAR", "")
	t.Setenv("KHATA_LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, ":8090", cfg.Addr)
	assert.Equal(t, "khata.db", cfg.DBPath)
	assert.Equal(t, "2080/81", cfg.FiscalYear)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KHATA_ADDR", ":9999")
	t.Setenv("KHATA_DB", "/tmp/other.db")
	t.Setenv("KHATA_FISCAL_YEAR", "2081/82")
	t.Setenv("KHATA_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, "2081/82", cfg.FiscalYear)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantIn string
	}{
		{"bad addr", func(c *Config) { c.Addr = "no-colon" }, "listen address"},
		{"empty db", func(c *Config) { c.DBPath = "" }, "database path"},
		{"bad fiscal year", func(c *Config) { c.FiscalYear = "2080-81" }, "fiscal year"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Addr: ":8090", DBPath: "khata.db", FiscalYear: "2080/81", LogLevel: "info"}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel())
	}
}
