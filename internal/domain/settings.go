package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds portfolio-level preferences. It is threaded explicitly into
// every computation that needs it; nothing reads ambient global state.
type Settings struct {
	// ExchangeRate is the fallback MYR-per-USD rate used when no live quote
	// is stored.
	ExchangeRate decimal.Decimal `json:"exchangeRate"`

	InvestableTarget decimal.Decimal `json:"investableTarget"`
	NetWorthTarget   decimal.Decimal `json:"netWorthTarget"`
}

// FireSettings parameterizes a projection run.
type FireSettings struct {
	CurrentAge          int             `json:"currentAge"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	LiquidReturnPct     decimal.Decimal `json:"liquidReturnPct"`
	EPFReturnPct        decimal.Decimal `json:"epfReturnPct"`
	InflationPct        decimal.Decimal `json:"inflationPct"`
	EPFMonthly          decimal.Decimal `json:"epfMonthly"`
	MonthlySpending     decimal.Decimal `json:"monthlySpending"`
	WithdrawalRatePct   decimal.Decimal `json:"withdrawalRatePct"`
}

// YearlyRecord is a user-entered end-of-year net worth entry.
type YearlyRecord struct {
	ID       string          `json:"id"`
	Year     int             `json:"year"`
	NetWorth decimal.Decimal `json:"netWorth"`
	Note     string          `json:"note,omitempty"`
}

// DividendRecord is a received dividend entry.
type DividendRecord struct {
	ID     string          `json:"id"`
	Symbol string          `json:"symbol"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// LoanRecord tracks an outstanding loan.
type LoanRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	RatePct    decimal.Decimal `json:"ratePct"`
	MonthlyDue decimal.Decimal `json:"monthlyDue"`
}

// Backup is the full persisted/exported state, one JSON document.
type Backup struct {
	Holdings     []Holding        `json:"holdings"`
	Settings     Settings         `json:"settings"`
	FireSettings FireSettings     `json:"fireSettings"`
	Yearly       []YearlyRecord   `json:"yearly"`
	Dividends    []DividendRecord `json:"dividends"`
	Loans        []LoanRecord     `json:"loans"`
}
