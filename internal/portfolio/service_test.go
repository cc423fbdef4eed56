package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

type fakeStore struct {
	holdings []domain.Holding
	settings domain.Settings
	fire     domain.FireSettings
}

func (f *fakeStore) Holdings(context.Context) ([]domain.Holding, error) { return f.holdings, nil }
func (f *fakeStore) Settings(context.Context) (domain.Settings, error) { return f.settings, nil }
func (f *fakeStore) FireSettings(context.Context) (domain.FireSettings, error) {
	return f.fire, nil
}

type fakeQuotes struct {
	rate decimal.Decimal
}

func (f *fakeQuotes) Rate(_ context.Context, settings domain.Settings) (decimal.Decimal, error) {
	if f.rate.IsPositive() {
		return f.rate, nil
	}
	return settings.ExchangeRate, nil
}

func (f *fakeQuotes) ApplyPrices(_ context.Context, holdings []domain.Holding) ([]domain.Holding, error) {
	return holdings, nil
}

func testService(st *fakeStore, q *fakeQuotes) *Service {
	s := NewService(st, q)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestCurrentValuesPortfolio(t *testing.T) {
	st := &fakeStore{
		holdings: []domain.Holding{
			{Symbol: "MAYBANK", Category: domain.CategoryStock, Currency: domain.MYR,
				Quantity: decimal.NewFromInt(10), AvgCost: decimal.NewFromInt(100),
				Price: decimal.NewFromInt(150)},
		},
	}
	svc := testService(st, &fakeQuotes{rate: decimal.RequireFromString("4.3")})

	view, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !view.Totals.Investable.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Investable = %v, want 1500", view.Totals.Investable)
	}
	if !view.Rate.Equal(decimal.RequireFromString("4.3")) {
		t.Errorf("Rate = %v, want 4.3", view.Rate)
	}
}

func TestProjectionTargetFromSpending(t *testing.T) {
	st := &fakeStore{
		fire: domain.FireSettings{
			CurrentAge:        30,
			MonthlySpending:   decimal.NewFromInt(5000),
			WithdrawalRatePct: decimal.NewFromInt(4),
		},
	}
	svc := testService(st, &fakeQuotes{rate: decimal.NewFromInt(4)})

	view, err := svc.Projection(context.Background())
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	if !view.Target.Equal(decimal.NewFromInt(1500000)) {
		t.Errorf("Target = %v, want 1500000 from spending", view.Target)
	}
	if !view.RequiredPortfolio.Equal(decimal.NewFromInt(1500000)) {
		t.Errorf("RequiredPortfolio = %v, want 1500000", view.RequiredPortfolio)
	}
}

func TestProjectionTargetFallsBackToSettings(t *testing.T) {
	st := &fakeStore{
		settings: domain.Settings{NetWorthTarget: decimal.NewFromInt(2000000)},
		fire:     domain.FireSettings{CurrentAge: 30},
	}
	svc := testService(st, &fakeQuotes{rate: decimal.NewFromInt(4)})

	view, err := svc.Projection(context.Background())
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	if !view.Target.Equal(decimal.NewFromInt(2000000)) {
		t.Errorf("Target = %v, want settings fallback 2000000", view.Target)
	}
}

func TestBridgeLiquidityOnly(t *testing.T) {
	st := &fakeStore{
		holdings: []domain.Holding{
			{Symbol: "EPF", Category: domain.CategoryEPF, Currency: domain.MYR,
				Quantity: decimal.NewFromInt(1_500_000), Price: decimal.NewFromInt(1)},
			{Symbol: "FD", Category: domain.CategoryMoneyMarket, Currency: domain.MYR,
				Quantity: decimal.NewFromInt(400_000)},
		},
	}
	svc := testService(st, &fakeQuotes{rate: decimal.NewFromInt(4)})

	view, err := svc.Bridge(context.Background(),
		decimal.NewFromInt(1_300_000), decimal.NewFromInt(100_000), 0)
	if err != nil {
		t.Fatalf("Bridge: %v", err)
	}
	if !view.Accessible.Equal(decimal.NewFromInt(200_000)) {
		t.Errorf("Accessible = %v, want 200000", view.Accessible)
	}
	if !view.Unlocked {
		t.Error("Unlocked = false, want true")
	}
	if !view.TotalLiquid.Equal(decimal.NewFromInt(600_000)) {
		t.Errorf("TotalLiquid = %v, want 600000", view.TotalLiquid)
	}
	if view.CatchUp != nil {
		t.Errorf("CatchUp = %+v, want nil without a target age", view.CatchUp)
	}
}

func TestBridgeCatchUpUsesOnlyMarkedSources(t *testing.T) {
	st := &fakeStore{
		holdings: []domain.Holding{
			{Symbol: "EPF", Category: domain.CategoryEPF, Currency: domain.MYR,
				Quantity: decimal.NewFromInt(1_100_000), Price: decimal.NewFromInt(1)},
			{Symbol: "FD", Category: domain.CategoryMoneyMarket, Currency: domain.MYR,
				Quantity: decimal.NewFromInt(500_000), BridgeSource: true},
			{Symbol: "STK", Category: domain.CategoryStock, Currency: domain.MYR,
				Quantity: decimal.NewFromInt(1000), Price: decimal.NewFromInt(100)},
		},
		fire: domain.FireSettings{CurrentAge: 40},
	}
	svc := testService(st, &fakeQuotes{rate: decimal.NewFromInt(4)})

	// Zero EPF growth: projected balance at 40 stays 1.1M, gap 200k.
	view, err := svc.Bridge(context.Background(),
		decimal.NewFromInt(1_300_000), decimal.NewFromInt(100_000), 40)
	if err != nil {
		t.Fatalf("Bridge: %v", err)
	}
	if view.CatchUp == nil {
		t.Fatal("CatchUp = nil, want a schedule")
	}
	if view.CatchUp.YearsNeeded != 2 || view.CatchUp.LatestStartAge != 38 {
		t.Errorf("CatchUp = %+v, want 2 years from age 38", view.CatchUp)
	}
	for _, y := range view.Transfers {
		for _, slice := range y.Slices {
			if slice.Source != "FD" {
				t.Errorf("transfer drew from unmarked holding %q", slice.Source)
			}
		}
	}
	if len(view.Transfers) == 0 {
		t.Error("no transfer plan produced")
	}
}
