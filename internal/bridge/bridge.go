// Package bridge models the EPF early-withdrawal rule: once the fund
// balance exceeds a regulatory threshold, the excess may be withdrawn and
// used to bridge living expenses before conventional retirement age.
package bridge

import "github.com/shopspring/decimal"

// DefaultThresholdMYR is the EPF balance a member must retain; only the
// excess above it is withdrawable early.
var DefaultThresholdMYR = decimal.NewFromInt(1_300_000)

// Liquidity describes how much of the EPF balance is usable for bridging.
type Liquidity struct {
	// TotalLiquid is ordinary liquid assets plus the accessible EPF excess.
	TotalLiquid decimal.Decimal `json:"totalLiquid"`
	Accessible  decimal.Decimal `json:"accessible"`
	Unlocked    bool            `json:"unlocked"`
}

// ComputeLiquidity derives bridge liquidity from the current balances.
// Accessible is max(0, balance-threshold); no state is carried.
func ComputeLiquidity(liquidTotal, epfBalance, threshold decimal.Decimal) Liquidity {
	accessible := epfBalance.Sub(threshold)
	if accessible.IsNegative() {
		accessible = decimal.Zero
	}
	return Liquidity{
		TotalLiquid: liquidTotal.Add(accessible),
		Accessible:  accessible,
		Unlocked:    epfBalance.GreaterThan(threshold),
	}
}
