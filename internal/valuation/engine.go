package valuation

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// Value prices holdings in both currencies and computes per-holding
// allocation percentages plus portfolio totals. rate is MYR per 1 USD; now
// anchors EPF accrual. There are no error conditions: invalid or missing
// numeric input degrades to zero.
func Value(holdings []domain.Holding, rate decimal.Decimal, now time.Time, settings domain.Settings) ([]domain.ValuedHolding, domain.PortfolioTotals) {
	valued := lo.Map(holdings, func(h domain.Holding, _ int) domain.ValuedHolding {
		return valueHolding(h, rate, now)
	})

	// Allocation denominator is the investable MYR value only.
	investable := lo.Reduce(valued, func(acc decimal.Decimal, v domain.ValuedHolding, _ int) decimal.Decimal {
		if !v.Category.IsInvestable() {
			return acc
		}
		return acc.Add(v.ValueMYR)
	}, decimal.Zero)

	for i := range valued {
		if valued[i].Category.IsInvestable() {
			valued[i].AllocationPct = domain.Pct(valued[i].ValueMYR, investable)
		}
	}

	return valued, calculateTotals(valued, settings)
}

func valueHolding(h domain.Holding, rate decimal.Decimal, now time.Time) domain.ValuedHolding {
	qty := h.Quantity
	if h.EPF != nil {
		qty = h.EPF.QuantityAt(now)
	}

	price := h.Price
	if h.Category.IsCashLike() {
		price = decimal.NewFromInt(1)
	}

	value := qty.Mul(price)
	cost := qty.Mul(h.AvgCost)
	if h.Category.IsCashLike() {
		// Cash has no separate cost basis; the amount is the basis.
		cost = value
	}

	v := domain.ValuedHolding{Holding: h}
	v.Quantity = qty

	switch h.Currency {
	case domain.USD:
		v.ValueUSD = value
		v.CostUSD = cost
		v.ValueMYR = mulRate(value, rate)
		v.CostMYR = mulRate(cost, rate)
	default:
		v.ValueMYR = value
		v.CostMYR = cost
		v.ValueUSD = domain.SafeRate(value, rate)
		v.CostUSD = domain.SafeRate(cost, rate)
	}

	v.ProfitMYR = v.ValueMYR.Sub(v.CostMYR)
	v.ProfitUSD = v.ValueUSD.Sub(v.CostUSD)
	v.ProfitPct = domain.Pct(v.ProfitMYR, v.CostMYR)

	return v
}

// mulRate converts a USD amount to MYR. A non-positive rate means no usable
// rate is available and the converted value is zero, mirroring SafeRate.
func mulRate(a, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return a.Mul(rate)
}
