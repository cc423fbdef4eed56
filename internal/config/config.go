package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/bridge"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatabaseURL string
	HTTPPort    string
	AdminAPIKey string

	QuoteAPIURL            string
	QuoteRetryMax          int
	QuoteRetryBaseDelay    time.Duration
	QuoteWorkerInterval    time.Duration
	SnapshotWorkerInterval time.Duration

	EPFThreshold   decimal.Decimal
	EPFAnnualLimit decimal.Decimal

	SheetsSpreadsheetID   string
	GoogleCredentialsJSON string

	AdvisorEnabled bool
}

// Load reads configuration from environment variables with sensible
// defaults, sourcing a local .env file first when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL: envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey: envOrDefault("ADMIN_API_KEY", ""),

		QuoteAPIURL:            envOrDefault("QUOTE_API_URL", "https://api.coingecko.com/api/v3"),
		QuoteRetryMax:          envOrDefaultInt("QUOTE_RETRY_MAX", 5),
		QuoteRetryBaseDelay:    envOrDefaultDuration("QUOTE_RETRY_BASE_DELAY", 2*time.Second),
		QuoteWorkerInterval:    envOrDefaultDuration("QUOTE_WORKER_INTERVAL", 1*time.Hour),
		SnapshotWorkerInterval: envOrDefaultDuration("SNAPSHOT_WORKER_INTERVAL", 24*time.Hour),

		EPFThreshold:   envOrDefaultDecimal("EPF_THRESHOLD", bridge.DefaultThresholdMYR),
		EPFAnnualLimit: envOrDefaultDecimal("EPF_ANNUAL_LIMIT", decimal.NewFromInt(100000)),

		SheetsSpreadsheetID:   envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		GoogleCredentialsJSON: envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),

		AdvisorEnabled: envOrDefaultBool("ADVISOR_ENABLED", false),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			slog.Warn("invalid decimal env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
