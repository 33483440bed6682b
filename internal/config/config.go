// Package config loads runtime configuration from the environment, with
// optional .env file support handled by the CLI layer.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

type Config struct {
	// HTTP server listen address.
	Addr string

	// SQLite database path.
	DBPath string

	// Active fiscal year label, e.g. "2080/81". Voucher sequences are
	// scoped to it.
	FiscalYear string

	// Log level: debug, info, warn, error.
	LogLevel string
}

var fiscalYearPattern = regexp.MustCompile(`^\d{4}/\d{2}$`)

func Load() *Config {
	return &Config{
		Addr:       getEnv("KHATA_ADDR", ":8090"),
		DBPath:     getEnv("KHATA_DB", "khata.db"),
		FiscalYear: getEnv("KHATA_FISCAL_YEAR", "2080/81"),
		LogLevel:   getEnv("KHATA_LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration shape before anything opens sockets or
// files.
func (c *Config) Validate() error {
	var problems []string

	if c.Addr == "" || !strings.Contains(c.Addr, ":") {
		problems = append(problems, fmt.Sprintf("invalid listen address %q", c.Addr))
	}
	if c.DBPath == "" {
		problems = append(problems, "database path is empty")
	}
	if !fiscalYearPattern.MatchString(c.FiscalYear) {
		problems = append(problems, fmt.Sprintf("invalid fiscal year %q: want YYYY/YY", c.FiscalYear))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel maps the configured level onto slog's scale.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
