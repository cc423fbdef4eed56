package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// Safety bounds for a projection run. A run always terminates: it stops at
// whichever of these is hit first, or earlier once the liquid balance alone
// clears LiquidStopMultiple times the target (continuing past that point
// adds no information to the chart).
const (
	// MaxPoints bounds the sequence length regardless of age or balances.
	MaxPoints = 70
	// MaxAge is the last age worth simulating to.
	MaxAge = 100
)

// LiquidStopMultiple ends the run once liquid assets alone reach this
// multiple of the target.
var LiquidStopMultiple = decimal.RequireFromString("1.5")

// Point is one simulated year. Balances are rounded to whole ringgit for
// storage; the compounding itself runs unrounded.
type Point struct {
	Age    int             `json:"age"`
	Year   int             `json:"year"`
	Liquid decimal.Decimal `json:"liquid"`
	EPF    decimal.Decimal `json:"epf"`
	Total  decimal.Decimal `json:"total"`
	Target decimal.Decimal `json:"target"`
}

// Crossing reports when a goal was first reached. Reached false means the
// goal was not hit before the run terminated; it is a sentinel, not an
// error.
type Crossing struct {
	Reached bool `json:"reached"`
	Age     int  `json:"age,omitempty"`
	Year    int  `json:"year,omitempty"`
}

// Result is a full projection run.
type Result struct {
	Points []Point `json:"points"`

	// TotalGoal is the first point where liquid+EPF reaches the target;
	// LiquidGoal the first where liquid alone does.
	TotalGoal  Crossing `json:"totalGoal"`
	LiquidGoal Crossing `json:"liquidGoal"`

	Milestones []Milestone `json:"milestones"`
}

// Project simulates year-by-year compounding of the liquid and EPF tracks
// under inflation-adjusted real returns. The run is deterministic: the same
// inputs always reproduce the same sequence from the same two seed
// balances.
func Project(startLiquid, startEPF, target decimal.Decimal, s domain.FireSettings, now time.Time) Result {
	hundred := decimal.NewFromInt(100)
	realLiquid := s.LiquidReturnPct.Sub(s.InflationPct).Div(hundred)
	realEPF := s.EPFReturnPct.Sub(s.InflationPct).Div(hundred)

	twelve := decimal.NewFromInt(12)
	annualLiquid := s.MonthlyContribution.Mul(twelve)
	annualEPF := s.EPFMonthly.Mul(twelve)

	liquid, epf := startLiquid, startEPF
	age := s.CurrentAge
	year := now.Year()
	stop := LiquidStopMultiple.Mul(target)

	points := []Point{makePoint(age, year, liquid, epf, target)}
	for len(points) < MaxPoints {
		if age >= MaxAge {
			break
		}
		if liquid.GreaterThanOrEqual(stop) {
			break
		}
		age++
		year++
		liquid = liquid.Add(liquid.Mul(realLiquid)).Add(annualLiquid)
		epf = epf.Add(epf.Mul(realEPF)).Add(annualEPF)
		points = append(points, makePoint(age, year, liquid, epf, target))
	}

	return Result{
		Points:     points,
		TotalGoal:  firstCrossing(points, target, func(p Point) decimal.Decimal { return p.Total }),
		LiquidGoal: firstCrossing(points, target, func(p Point) decimal.Decimal { return p.Liquid }),
		Milestones: detectMilestones(points),
	}
}

func makePoint(age, year int, liquid, epf, target decimal.Decimal) Point {
	l := liquid.Round(0)
	e := epf.Round(0)
	return Point{
		Age:    age,
		Year:   year,
		Liquid: l,
		EPF:    e,
		Total:  l.Add(e),
		Target: target,
	}
}

func firstCrossing(points []Point, target decimal.Decimal, balance func(Point) decimal.Decimal) Crossing {
	for _, p := range points {
		if balance(p).GreaterThanOrEqual(target) {
			return Crossing{Reached: true, Age: p.Age, Year: p.Year}
		}
	}
	return Crossing{}
}

// TrackBalance compounds a single track forward by the given number of
// years under its real return, with one year of contributions added per
// step. Used to project the EPF balance to a specific age without running
// a full two-track simulation.
func TrackBalance(start, nominalPct, inflationPct, monthly decimal.Decimal, years int) decimal.Decimal {
	realReturn := nominalPct.Sub(inflationPct).Div(decimal.NewFromInt(100))
	annual := monthly.Mul(decimal.NewFromInt(12))

	bal := start
	for range years {
		bal = bal.Add(bal.Mul(realReturn)).Add(annual)
	}
	return bal
}

// DefaultWithdrawalRatePct substitutes for a missing or non-positive
// withdrawal rate in the reverse calculation.
var DefaultWithdrawalRatePct = decimal.RequireFromString("4.0")

// RequiredPortfolio computes the portfolio size needed to sustain the
// desired monthly spending at the given withdrawal rate.
func RequiredPortfolio(monthlySpending, withdrawalRatePct decimal.Decimal) decimal.Decimal {
	rate := withdrawalRatePct
	if !rate.IsPositive() {
		rate = DefaultWithdrawalRatePct
	}
	annual := monthlySpending.Mul(decimal.NewFromInt(12))
	return annual.Div(rate.Div(decimal.NewFromInt(100)))
}
