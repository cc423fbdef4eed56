package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"DATABASE_URL", "QUOTE_API_URL", "HTTP_PORT", "QUOTE_RETRY_MAX", "EPF_THRESHOLD", "ADVISOR_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.QuoteAPIURL != "https://api.coingecko.com/api/v3" {
		t.Errorf("QuoteAPIURL = %q, want default", cfg.QuoteAPIURL)
	}
	if cfg.QuoteRetryMax != 5 {
		t.Errorf("QuoteRetryMax = %d, want 5", cfg.QuoteRetryMax)
	}
	if cfg.QuoteRetryBaseDelay != 2*time.Second {
		t.Errorf("QuoteRetryBaseDelay = %v, want 2s", cfg.QuoteRetryBaseDelay)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if !cfg.EPFThreshold.Equal(decimal.NewFromInt(1300000)) {
		t.Errorf("EPFThreshold = %s, want 1300000", cfg.EPFThreshold)
	}
	if cfg.AdvisorEnabled {
		t.Error("AdvisorEnabled = true, want false by default")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("QUOTE_API_URL", "https://quotes.example.com")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("QUOTE_RETRY_MAX", "10")
	t.Setenv("EPF_THRESHOLD", "1000000")
	t.Setenv("EPF_ANNUAL_LIMIT", "50000")
	t.Setenv("ADVISOR_ENABLED", "true")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.QuoteAPIURL != "https://quotes.example.com" {
		t.Errorf("QuoteAPIURL = %q, want override", cfg.QuoteAPIURL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.QuoteRetryMax != 10 {
		t.Errorf("QuoteRetryMax = %d, want 10", cfg.QuoteRetryMax)
	}
	if !cfg.EPFThreshold.Equal(decimal.NewFromInt(1000000)) {
		t.Errorf("EPFThreshold = %s, want 1000000", cfg.EPFThreshold)
	}
	if !cfg.EPFAnnualLimit.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("EPFAnnualLimit = %s, want 50000", cfg.EPFAnnualLimit)
	}
	if !cfg.AdvisorEnabled {
		t.Error("AdvisorEnabled = false, want true")
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("QUOTE_RETRY_MAX", "not-a-number")
	t.Setenv("QUOTE_RETRY_BASE_DELAY", "invalid-duration")
	t.Setenv("EPF_THRESHOLD", "not-a-decimal")

	cfg := Load()

	if cfg.QuoteRetryMax != 5 {
		t.Errorf("QuoteRetryMax = %d, want default 5 on invalid input", cfg.QuoteRetryMax)
	}
	if cfg.QuoteRetryBaseDelay != 2*time.Second {
		t.Errorf("QuoteRetryBaseDelay = %v, want default 2s on invalid input", cfg.QuoteRetryBaseDelay)
	}
	if !cfg.EPFThreshold.Equal(decimal.NewFromInt(1300000)) {
		t.Errorf("EPFThreshold = %s, want default 1300000 on invalid input", cfg.EPFThreshold)
	}
}
