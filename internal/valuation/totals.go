package valuation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// calculateTotals partitions valued holdings into the aggregate buckets:
// investable (allocation universe), savings (everything but EPF), EPF, and
// total net worth. Cost and profit aggregates cover the investable subset
// only.
func calculateTotals(valued []domain.ValuedHolding, settings domain.Settings) domain.PortfolioTotals {
	var t domain.PortfolioTotals

	t.NetWorth = lo.Reduce(valued, func(acc decimal.Decimal, v domain.ValuedHolding, _ int) decimal.Decimal {
		return acc.Add(v.ValueMYR)
	}, decimal.Zero)

	for _, v := range valued {
		if v.Category == domain.CategoryEPF {
			t.EPF = t.EPF.Add(v.ValueMYR)
			continue
		}
		t.Savings = t.Savings.Add(v.ValueMYR)
		if v.Category.IsInvestable() {
			t.Investable = t.Investable.Add(v.ValueMYR)
			t.InvestableCost = t.InvestableCost.Add(v.CostMYR)
		}
	}

	t.InvestableProfit = t.Investable.Sub(t.InvestableCost)
	t.ProfitPct = domain.Pct(t.InvestableProfit, t.InvestableCost)

	t.InvestableProgress = domain.SafeDiv(t.Investable, settings.InvestableTarget)
	t.NetWorthProgress = domain.SafeDiv(t.NetWorth, settings.NetWorthTarget)

	return t
}
