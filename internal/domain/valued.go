package domain

import "github.com/shopspring/decimal"

// ValuedHolding is a Holding priced in both currencies. It is recomputed
// from raw holdings and the current exchange rate on every valuation pass
// and is never persisted.
type ValuedHolding struct {
	Holding

	ValueMYR  decimal.Decimal `json:"valueMYR"`
	ValueUSD  decimal.Decimal `json:"valueUSD"`
	CostMYR   decimal.Decimal `json:"costMYR"`
	CostUSD   decimal.Decimal `json:"costUSD"`
	ProfitMYR decimal.Decimal `json:"profitMYR"`
	ProfitUSD decimal.Decimal `json:"profitUSD"`
	ProfitPct decimal.Decimal `json:"profitPct"`

	// AllocationPct is the holding's share of the investable portfolio.
	// Non-investable holdings always report 0.
	AllocationPct decimal.Decimal `json:"allocationPct"`
}

// PortfolioTotals aggregates a valuation pass. All amounts are MYR.
type PortfolioTotals struct {
	Investable decimal.Decimal `json:"investable"`
	Savings    decimal.Decimal `json:"savings"`
	EPF        decimal.Decimal `json:"epf"`
	NetWorth   decimal.Decimal `json:"netWorth"`

	InvestableCost   decimal.Decimal `json:"investableCost"`
	InvestableProfit decimal.Decimal `json:"investableProfit"`
	ProfitPct        decimal.Decimal `json:"profitPct"`

	// Progress ratios against the user's targets, 0 when no target is set.
	InvestableProgress decimal.Decimal `json:"investableProgress"`
	NetWorthProgress   decimal.Decimal `json:"netWorthProgress"`
}
