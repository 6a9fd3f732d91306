package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultExcludedRoles are the administrator-tier roles withheld from every
// report, export and role listing. Overridable via EXCLUDED_ROLES.
var DefaultExcludedRoles = []string{
	"administrator",
	"authenticated",
	"system_administrator",
	"cms_administrator",
}

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort         string
	ClickHouseURL    string
	AppMode          string
	FiberPrefork     bool
	ExportDir        string
	ContentURLPrefix string
	ExcludedRoles    []string
	DBConnTimeout    time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", ":8080"),
		AppMode:          strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork:     parseBoolEnv("FIBER_PREFORK", false),
		ExportDir:        getEnv("EXPORT_DIR", "mi_exports"),
		ContentURLPrefix: os.Getenv("CONTENT_URL_PREFIX"),
		ExcludedRoles:    parseListEnv("EXCLUDED_ROLES", DefaultExcludedRoles),
		DBConnTimeout:    parseDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
	}
	cfg.ClickHouseURL = os.Getenv("CLICKHOUSE_URL")
	if cfg.ClickHouseURL == "" {
		return nil, fmt.Errorf("CLICKHOUSE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseListEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
