package domain

// Currency is one of the two units the tracker values holdings in.
// MYR is the home currency; USD is the only foreign currency.
type Currency string

const (
	MYR Currency = "MYR"
	USD Currency = "USD"
)

// Category classifies a holding. The set is closed: membership checks go
// through the classification table below, never through string comparison
// at call sites.
type Category string

const (
	CategoryStock          Category = "stock"
	CategoryETF            Category = "etf"
	CategoryCrypto         Category = "crypto"
	CategoryInvestmentCash Category = "investment_cash"
	CategorySavingsCash    Category = "savings_cash"
	CategoryMoneyMarket    Category = "money_market"
	CategoryEPF            Category = "epf"
)

type categoryTraits struct {
	investable bool
	cashLike   bool
}

// classification is the single source of truth for category behavior.
// A new category must be added here or Valid() rejects it.
var classification = map[Category]categoryTraits{
	CategoryStock:          {investable: true},
	CategoryETF:            {investable: true},
	CategoryCrypto:         {investable: true},
	CategoryInvestmentCash: {investable: true, cashLike: true},
	CategorySavingsCash:    {cashLike: true},
	CategoryMoneyMarket:    {cashLike: true},
	CategoryEPF:            {},
}

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryStock,
		CategoryETF,
		CategoryCrypto,
		CategoryInvestmentCash,
		CategorySavingsCash,
		CategoryMoneyMarket,
		CategoryEPF,
	}
}

// IsInvestable reports whether the category contributes to the allocation
// denominator and participates in rebalancing.
func (c Category) IsInvestable() bool { return classification[c].investable }

// IsCashLike reports whether the category's unit price is pinned to 1 and
// its quantity is the cash amount itself.
func (c Category) IsCashLike() bool { return classification[c].cashLike }

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := classification[c]
	return ok
}
