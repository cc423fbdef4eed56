package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EPFAccrual configures automatic balance growth for an EPF holding.
// The stored quantity is ignored; the effective balance is derived from the
// base amount plus one monthly contribution per whole month since StartDate.
type EPFAccrual struct {
	Base      decimal.Decimal `json:"base"`
	Monthly   decimal.Decimal `json:"monthly"`
	StartDate time.Time       `json:"startDate"`
}

// QuantityAt returns the accrued balance at the given time.
// Partial months do not count; a start date in the future accrues nothing
// beyond the base amount.
func (a EPFAccrual) QuantityAt(now time.Time) decimal.Decimal {
	months := (now.Year()-a.StartDate.Year())*12 + int(now.Month()) - int(a.StartDate.Month())
	if now.Day() < a.StartDate.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return a.Base.Add(a.Monthly.Mul(decimal.NewFromInt(int64(months))))
}

// Holding is a raw portfolio position as entered by the user (or accrued,
// for EPF). For cash-like categories Price is 1 and Quantity is the cash
// amount.
type Holding struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Currency  Currency        `json:"currency"`
	Quantity  decimal.Decimal `json:"quantity"`
	AvgCost   decimal.Decimal `json:"avgCost"`
	Price     decimal.Decimal `json:"price"`
	TargetPct decimal.Decimal `json:"targetPct"`
	Group     string          `json:"group,omitempty"`
	EPF       *EPFAccrual     `json:"epf,omitempty"`

	// BridgeSource marks the holding as eligible to fund EPF catch-up
	// transfers. Transfer simulation never draws from unmarked holdings.
	BridgeSource bool `json:"bridgeSource,omitempty"`
}
