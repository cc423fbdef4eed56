package domain

import "github.com/shopspring/decimal"

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeDiv returns a/b, or zero when b is zero. Computation code never
// divides directly; a zero denominator degrades to zero rather than faulting.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// SafeRate returns a/rate, or zero when the rate is zero or negative.
// A non-positive exchange rate means "no usable rate", not an error.
func SafeRate(a, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return a.Div(rate)
}

// Pct returns part/whole*100, or zero when whole is zero.
func Pct(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
