package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEPFAccrualWholeMonths(t *testing.T) {
	a := EPFAccrual{
		Base:      decimal.NewFromInt(100000),
		Monthly:   decimal.NewFromInt(1000),
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	// Three full months plus a few days: only whole months count.
	now := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	if got := a.QuantityAt(now); !got.Equal(decimal.NewFromInt(103000)) {
		t.Errorf("QuantityAt = %v, want 103000", got)
	}
}

func TestEPFAccrualPartialMonthNotCounted(t *testing.T) {
	a := EPFAccrual{
		Base:      decimal.NewFromInt(100000),
		Monthly:   decimal.NewFromInt(1000),
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	// Day-of-month not yet reached: one month short.
	now := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	if got := a.QuantityAt(now); !got.Equal(decimal.NewFromInt(102000)) {
		t.Errorf("QuantityAt = %v, want 102000", got)
	}
}

func TestEPFAccrualFutureStartDate(t *testing.T) {
	a := EPFAccrual{
		Base:      decimal.NewFromInt(50000),
		Monthly:   decimal.NewFromInt(1000),
		StartDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := a.QuantityAt(now); !got.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("QuantityAt with future start = %v, want base 50000", got)
	}
}
