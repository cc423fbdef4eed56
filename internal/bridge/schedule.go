package bridge

import "github.com/shopspring/decimal"

// CatchUpSchedule is the plan for topping an EPF balance up to the
// threshold before a target age.
type CatchUpSchedule struct {
	Gap            decimal.Decimal `json:"gap"`
	YearsNeeded    int             `json:"yearsNeeded"`
	LatestStartAge int             `json:"latestStartAge"`
}

// ScheduleCatchUp computes how many years of self-contributions are needed
// to close the gap between the projected balance and the threshold by the
// target age. A nil result means the projected balance is already
// sufficient.
func ScheduleCatchUp(targetAge int, projectedBalance, threshold, annualLimit decimal.Decimal) *CatchUpSchedule {
	gap := threshold.Sub(projectedBalance)
	if !gap.IsPositive() {
		return nil
	}
	if !annualLimit.IsPositive() {
		return nil
	}

	years := int(gap.Div(annualLimit).Ceil().IntPart())
	return &CatchUpSchedule{
		Gap:            gap,
		YearsNeeded:    years,
		LatestStartAge: targetAge - years,
	}
}

// Source is a candidate asset eligible to fund catch-up transfers. Only
// assets explicitly listed as sources are ever drawn from.
type Source struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// TransferSlice is one source's share of a single year's contribution.
type TransferSlice struct {
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
}

// TransferYear is one year of the transfer plan.
type TransferYear struct {
	Year       int             `json:"year"`
	Age        int             `json:"age"`
	Slices     []TransferSlice `json:"slices"`
	YearTotal  decimal.Decimal `json:"yearTotal"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// SimulateTransfers produces a year-by-year plan that closes the shortfall
// by draining the given sources, up to the annual limit per year. Each year
// draws from the source with the largest remaining balance first, splitting
// across sources when one runs dry. The plan stops once the shortfall is
// covered or the years run out.
func SimulateTransfers(gap decimal.Decimal, years, startAge, startYear int, annualLimit decimal.Decimal, sources []Source) []TransferYear {
	if !gap.IsPositive() || years <= 0 || !annualLimit.IsPositive() {
		return nil
	}

	remaining := make([]Source, len(sources))
	copy(remaining, sources)

	var plan []TransferYear
	cumulative := decimal.Zero
	left := gap

	for y := 0; y < years && left.IsPositive(); y++ {
		yearBudget := decimal.Min(annualLimit, left)
		ty := TransferYear{Year: startYear + y, Age: startAge + y}

		for yearBudget.IsPositive() {
			idx := richestSource(remaining)
			if idx < 0 {
				break
			}
			amount := decimal.Min(yearBudget, remaining[idx].Value)
			ty.Slices = append(ty.Slices, TransferSlice{
				Source: remaining[idx].Name,
				Amount: amount,
			})
			remaining[idx].Value = remaining[idx].Value.Sub(amount)
			yearBudget = yearBudget.Sub(amount)
			ty.YearTotal = ty.YearTotal.Add(amount)
		}

		if ty.YearTotal.IsZero() {
			// Sources exhausted; further years cannot contribute.
			break
		}

		cumulative = cumulative.Add(ty.YearTotal)
		ty.Cumulative = cumulative
		left = left.Sub(ty.YearTotal)
		plan = append(plan, ty)
	}

	return plan
}

// richestSource returns the index of the source with the largest remaining
// balance, or -1 when all are empty. Ties resolve by name for determinism.
func richestSource(sources []Source) int {
	idx := -1
	for i := range sources {
		if !sources[i].Value.IsPositive() {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		c := sources[i].Value.Cmp(sources[idx].Value)
		if c > 0 || (c == 0 && sources[i].Name < sources[idx].Name) {
			idx = i
		}
	}
	return idx
}
