package rebalance

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// DeadBandMYR is the gap size below which no action is emitted. Rounding
// noise and price drift routinely produce gaps of a few ringgit; acting on
// them would churn the portfolio.
var DeadBandMYR = decimal.NewFromInt(50)

// Kind is the direction of a rebalancing action.
type Kind string

const (
	Buy  Kind = "buy"
	Sell Kind = "sell"
)

// Action is one buy or sell needed to move a holding toward its target
// weight. AmountMYR and AmountUSD are signed: positive buys, negative sells.
// Units is the unsigned unit quantity implied at the current price.
type Action struct {
	Symbol    string          `json:"symbol"`
	Kind      Kind            `json:"kind"`
	AmountMYR decimal.Decimal `json:"amountMYR"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
	Units     decimal.Decimal `json:"units"`

	CurrentPct decimal.Decimal `json:"currentPct"`
	TargetPct  decimal.Decimal `json:"targetPct"`

	Group           string          `json:"group,omitempty"`
	GroupCurrentPct decimal.Decimal `json:"groupCurrentPct,omitempty"`
	GroupTargetPct  decimal.Decimal `json:"groupTargetPct,omitempty"`
}

// Plan computes the actions that close the gap between current and target
// allocation. Holdings sharing a group label are rebalanced as one unit,
// with the group's gap split across members in proportion to each member's
// share of the group target. A group with target 0% is liquidated entirely;
// a 0%-target member inside a non-zero group receives nothing, which lets
// new money flow to a sibling instrument without touching the member.
//
// Returned warnings flag target weights that do not form a valid allocation
// (sum above 100); the plan is still produced.
func Plan(valued []domain.ValuedHolding, rate decimal.Decimal) ([]Action, []string) {
	investable := lo.Filter(valued, func(v domain.ValuedHolding, _ int) bool {
		return v.Category.IsInvestable()
	})

	total := lo.Reduce(investable, func(acc decimal.Decimal, v domain.ValuedHolding, _ int) decimal.Decimal {
		return acc.Add(v.ValueMYR)
	}, decimal.Zero)

	warnings := validateTargets(investable)

	groups := lo.GroupBy(investable, groupKey)

	hundred := decimal.NewFromInt(100)
	var actions []Action
	for _, members := range groups {
		groupValue := lo.Reduce(members, func(acc decimal.Decimal, v domain.ValuedHolding, _ int) decimal.Decimal {
			return acc.Add(v.ValueMYR)
		}, decimal.Zero)
		groupTarget := lo.Reduce(members, func(acc decimal.Decimal, v domain.ValuedHolding, _ int) decimal.Decimal {
			return acc.Add(v.TargetPct)
		}, decimal.Zero)

		groupTargetValue := total.Mul(groupTarget).Div(hundred)
		groupGap := groupTargetValue.Sub(groupValue)
		groupCurrentPct := domain.Pct(groupValue, total)

		for _, member := range members {
			var gap decimal.Decimal
			if groupTarget.IsZero() {
				// No target at all: anything held is surplus.
				gap = member.ValueMYR.Neg()
			} else {
				gap = groupGap.Mul(member.TargetPct).Div(groupTarget)
			}

			if gap.Abs().LessThanOrEqual(DeadBandMYR) {
				continue
			}

			a := Action{
				Symbol:     member.Symbol,
				Kind:       Buy,
				AmountMYR:  gap,
				Units:      impliedUnits(member, gap, rate),
				CurrentPct: domain.Pct(member.ValueMYR, total),
				TargetPct:  member.TargetPct,
			}
			if gap.IsNegative() {
				a.Kind = Sell
			}
			if member.Currency == domain.USD {
				a.AmountUSD = domain.SafeRate(gap, rate)
			}
			if member.Group != "" {
				a.Group = member.Group
				a.GroupCurrentPct = groupCurrentPct
				a.GroupTargetPct = groupTarget
			}
			actions = append(actions, a)
		}
	}

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Kind != actions[j].Kind {
			return actions[i].Kind == Buy
		}
		return actions[i].AmountMYR.Abs().GreaterThan(actions[j].AmountMYR.Abs())
	})

	return actions, warnings
}

// groupKey partitions holdings: a shared group label is one unit, everything
// else is a singleton keyed by its own symbol.
func groupKey(v domain.ValuedHolding) string {
	if v.Group != "" {
		return "group:" + v.Group
	}
	return "symbol:" + v.Symbol
}

// impliedUnits converts a MYR gap into a unit quantity at the holding's
// current price. USD holdings convert the gap to USD first.
func impliedUnits(v domain.ValuedHolding, gap, rate decimal.Decimal) decimal.Decimal {
	amount := gap.Abs()
	if v.Currency == domain.USD {
		amount = domain.SafeRate(amount, rate)
	}
	return domain.SafeDiv(amount, v.Price)
}

func validateTargets(investable []domain.ValuedHolding) []string {
	sum := lo.Reduce(investable, func(acc decimal.Decimal, v domain.ValuedHolding, _ int) decimal.Decimal {
		return acc.Add(v.TargetPct)
	}, decimal.Zero)
	if sum.GreaterThan(decimal.NewFromInt(100)) {
		return []string{fmt.Sprintf("target weights sum to %s%%, above 100%%", sum)}
	}
	return nil
}
