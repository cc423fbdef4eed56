package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParseValid(t *testing.T) {
	got := SafeParse("123.45")
	if !got.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("SafeParse(123.45) = %v", got)
	}
}

func TestSafeParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3"} {
		if got := SafeParse(in); !got.IsZero() {
			t.Errorf("SafeParse(%q) = %v, want 0", in, got)
		}
	}
}

func TestSafeDivZeroDenominator(t *testing.T) {
	got := SafeDiv(decimal.NewFromInt(100), decimal.Zero)
	if !got.IsZero() {
		t.Errorf("SafeDiv(100, 0) = %v, want 0", got)
	}
}

func TestSafeRateNonPositive(t *testing.T) {
	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-4)} {
		if got := SafeRate(decimal.NewFromInt(100), rate); !got.IsZero() {
			t.Errorf("SafeRate(100, %v) = %v, want 0", rate, got)
		}
	}
}

func TestPct(t *testing.T) {
	got := Pct(decimal.NewFromInt(25), decimal.NewFromInt(200))
	if !got.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Pct(25, 200) = %v, want 12.5", got)
	}
	if got := Pct(decimal.NewFromInt(25), decimal.Zero); !got.IsZero() {
		t.Errorf("Pct(25, 0) = %v, want 0", got)
	}
}
