// Package portfolio wires stored holdings, live quotes and the computation
// engines into the views the API serves. All calculation lives in the
// engine packages; this service only gathers their inputs.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/bridge"
	"github.com/ringgitlab/firetrack/internal/domain"
	"github.com/ringgitlab/firetrack/internal/projection"
	"github.com/ringgitlab/firetrack/internal/rebalance"
	"github.com/ringgitlab/firetrack/internal/valuation"
)

// Store supplies persisted portfolio state.
type Store interface {
	Holdings(ctx context.Context) ([]domain.Holding, error)
	Settings(ctx context.Context) (domain.Settings, error)
	FireSettings(ctx context.Context) (domain.FireSettings, error)
}

// QuoteSource supplies the exchange rate and applies stored prices.
type QuoteSource interface {
	Rate(ctx context.Context, settings domain.Settings) (decimal.Decimal, error)
	ApplyPrices(ctx context.Context, holdings []domain.Holding) ([]domain.Holding, error)
}

// Service orchestrates a full valuation pass and the derived computations.
type Service struct {
	store  Store
	quotes QuoteSource
	now    func() time.Time
}

// NewService creates a new portfolio Service.
func NewService(store Store, quotes QuoteSource) *Service {
	if store == nil {
		panic("portfolio.NewService: store is nil")
	}
	if quotes == nil {
		panic("portfolio.NewService: quotes is nil")
	}
	return &Service{store: store, quotes: quotes, now: time.Now}
}

// View is a complete valuation pass.
type View struct {
	Holdings []domain.ValuedHolding `json:"holdings"`
	Totals   domain.PortfolioTotals `json:"totals"`
	Rate     decimal.Decimal        `json:"rate"`
}

// Current values the portfolio with the latest stored prices and rate.
func (s *Service) Current(ctx context.Context) (View, error) {
	holdings, err := s.store.Holdings(ctx)
	if err != nil {
		return View{}, fmt.Errorf("loading holdings: %w", err)
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return View{}, fmt.Errorf("loading settings: %w", err)
	}
	rate, err := s.quotes.Rate(ctx, settings)
	if err != nil {
		return View{}, fmt.Errorf("resolving exchange rate: %w", err)
	}
	priced, err := s.quotes.ApplyPrices(ctx, holdings)
	if err != nil {
		return View{}, fmt.Errorf("applying prices: %w", err)
	}

	valued, totals := valuation.Value(priced, rate, s.now(), settings)
	return View{Holdings: valued, Totals: totals, Rate: rate}, nil
}

// RebalanceView is the rebalancing plan for the current portfolio.
type RebalanceView struct {
	Actions  []rebalance.Action `json:"actions"`
	Warnings []string           `json:"warnings,omitempty"`
}

// Rebalance computes the current buy/sell plan.
func (s *Service) Rebalance(ctx context.Context) (RebalanceView, error) {
	view, err := s.Current(ctx)
	if err != nil {
		return RebalanceView{}, err
	}
	actions, warnings := rebalance.Plan(view.Holdings, view.Rate)
	return RebalanceView{Actions: actions, Warnings: warnings}, nil
}

// ProjectionView is a projection run plus its derived target.
type ProjectionView struct {
	projection.Result

	Target            decimal.Decimal `json:"target"`
	RequiredPortfolio decimal.Decimal `json:"requiredPortfolio"`
}

// Projection runs the FIRE projection from the current balances. The target
// is derived from desired spending and the withdrawal rate; when no
// spending is configured the explicit net worth target applies instead.
func (s *Service) Projection(ctx context.Context) (ProjectionView, error) {
	view, err := s.Current(ctx)
	if err != nil {
		return ProjectionView{}, err
	}
	fire, err := s.store.FireSettings(ctx)
	if err != nil {
		return ProjectionView{}, fmt.Errorf("loading projection settings: %w", err)
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return ProjectionView{}, fmt.Errorf("loading settings: %w", err)
	}

	required := projection.RequiredPortfolio(fire.MonthlySpending, fire.WithdrawalRatePct)
	target := required
	if !fire.MonthlySpending.IsPositive() {
		target = settings.NetWorthTarget
	}

	result := projection.Project(view.Totals.Savings, view.Totals.EPF, target, fire, s.now())
	return ProjectionView{Result: result, Target: target, RequiredPortfolio: required}, nil
}

// BridgeView is the current bridge liquidity plus an optional catch-up
// schedule and transfer plan.
type BridgeView struct {
	bridge.Liquidity

	Threshold decimal.Decimal         `json:"threshold"`
	CatchUp   *bridge.CatchUpSchedule `json:"catchUp,omitempty"`
	Transfers []bridge.TransferYear   `json:"transfers,omitempty"`
}

// Bridge computes bridge liquidity against the threshold. When a target age
// is given (> 0), it also projects the EPF balance to that age, schedules
// the catch-up contributions, and simulates funding them from holdings
// explicitly marked as bridge sources.
func (s *Service) Bridge(ctx context.Context, threshold, annualLimit decimal.Decimal, targetAge int) (BridgeView, error) {
	view, err := s.Current(ctx)
	if err != nil {
		return BridgeView{}, err
	}

	out := BridgeView{
		Liquidity: bridge.ComputeLiquidity(view.Totals.Savings, view.Totals.EPF, threshold),
		Threshold: threshold,
	}
	if targetAge <= 0 {
		return out, nil
	}

	fire, err := s.store.FireSettings(ctx)
	if err != nil {
		return BridgeView{}, fmt.Errorf("loading projection settings: %w", err)
	}

	projected := s.epfBalanceAtAge(view, fire, targetAge)
	out.CatchUp = bridge.ScheduleCatchUp(targetAge, projected, threshold, annualLimit)
	if out.CatchUp == nil {
		return out, nil
	}

	sources := lo.FilterMap(view.Holdings, func(v domain.ValuedHolding, _ int) (bridge.Source, bool) {
		return bridge.Source{Name: v.Symbol, Value: v.ValueMYR}, v.BridgeSource
	})
	startAge := out.CatchUp.LatestStartAge
	startYear := s.now().Year() + (startAge - fire.CurrentAge)
	out.Transfers = bridge.SimulateTransfers(out.CatchUp.Gap, out.CatchUp.YearsNeeded,
		startAge, startYear, annualLimit, sources)

	return out, nil
}

// epfBalanceAtAge projects the EPF track alone to the target age.
func (s *Service) epfBalanceAtAge(view View, fire domain.FireSettings, targetAge int) decimal.Decimal {
	years := targetAge - fire.CurrentAge
	if years < 0 {
		years = 0
	}
	return projection.TrackBalance(view.Totals.EPF,
		fire.EPFReturnPct, fire.InflationPct, fire.EPFMonthly, years)
}
