package rebalance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

func investableHolding(symbol string, valueMYR, targetPct int64, group string) domain.ValuedHolding {
	return domain.ValuedHolding{
		Holding: domain.Holding{
			Symbol:    symbol,
			Category:  domain.CategoryStock,
			Currency:  domain.MYR,
			Price:     decimal.NewFromInt(10),
			TargetPct: decimal.NewFromInt(targetPct),
			Group:     group,
		},
		ValueMYR: decimal.NewFromInt(valueMYR),
	}
}

func TestPlanBuyAndSell(t *testing.T) {
	// Total 10000; A at 60/target 50 (sell 1000), B at 40/target 50 (buy 1000).
	valued := []domain.ValuedHolding{
		investableHolding("A", 6000, 50, ""),
		investableHolding("B", 4000, 50, ""),
	}

	actions, warnings := Plan(valued, decimal.NewFromInt(4))

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(actions) != 2 {
		t.Fatalf("len(actions) = %d, want 2", len(actions))
	}

	// Buys sort before sells.
	if actions[0].Symbol != "B" || actions[0].Kind != Buy {
		t.Errorf("first action = %s %s, want buy B", actions[0].Kind, actions[0].Symbol)
	}
	if !actions[0].AmountMYR.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("buy amount = %v, want 1000", actions[0].AmountMYR)
	}
	if actions[1].Symbol != "A" || actions[1].Kind != Sell {
		t.Errorf("second action = %s %s, want sell A", actions[1].Kind, actions[1].Symbol)
	}
	if !actions[1].AmountMYR.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("sell amount = %v, want -1000", actions[1].AmountMYR)
	}
	if !actions[0].Units.Equal(decimal.NewFromInt(100)) {
		t.Errorf("buy units = %v, want 100", actions[0].Units)
	}
}

func TestPlanDeadBandHolds(t *testing.T) {
	// Gap of exactly 40 on each side: inside the dead band, no actions.
	valued := []domain.ValuedHolding{
		investableHolding("A", 5040, 50, ""),
		investableHolding("B", 4960, 50, ""),
	}

	actions, _ := Plan(valued, decimal.NewFromInt(4))
	if len(actions) != 0 {
		t.Errorf("actions = %v, want none inside dead band", actions)
	}
}

func TestPlanZeroTargetMemberInGroup(t *testing.T) {
	// Group target 2%: the 0% member gets nothing, the 2% member absorbs the
	// whole group gap.
	valued := []domain.ValuedHolding{
		investableHolding("CORE", 0, 0, "world"),
		investableHolding("SAT", 0, 2, "world"),
		investableHolding("REST", 49000, 98, ""),
	}
	// Total 49000; group target value = 980, gap = +980.
	actions, _ := Plan(valued, decimal.NewFromInt(4))

	var sat *Action
	for i := range actions {
		if actions[i].Symbol == "SAT" {
			sat = &actions[i]
		}
		if actions[i].Symbol == "CORE" {
			t.Errorf("0%%-target member received action %v", actions[i])
		}
	}
	if sat == nil {
		t.Fatal("no action for SAT")
	}
	if !sat.AmountMYR.Equal(decimal.NewFromInt(980)) {
		t.Errorf("SAT amount = %v, want 980", sat.AmountMYR)
	}
	if !sat.GroupTargetPct.Equal(decimal.NewFromInt(2)) {
		t.Errorf("GroupTargetPct = %v, want 2", sat.GroupTargetPct)
	}
}

func TestPlanZeroTargetGroupLiquidates(t *testing.T) {
	valued := []domain.ValuedHolding{
		investableHolding("OLD", 3000, 0, ""),
		investableHolding("KEEP", 7000, 100, ""),
	}

	actions, _ := Plan(valued, decimal.NewFromInt(4))

	var old *Action
	for i := range actions {
		if actions[i].Symbol == "OLD" {
			old = &actions[i]
		}
	}
	if old == nil {
		t.Fatal("no action for zero-target holding")
	}
	if old.Kind != Sell || !old.AmountMYR.Equal(decimal.NewFromInt(-3000)) {
		t.Errorf("zero-target action = %s %v, want sell -3000", old.Kind, old.AmountMYR)
	}
}

func TestPlanUSDHoldingConvertsGap(t *testing.T) {
	usd := domain.ValuedHolding{
		Holding: domain.Holding{
			Symbol:    "VOO",
			Category:  domain.CategoryETF,
			Currency:  domain.USD,
			Price:     decimal.NewFromInt(100),
			TargetPct: decimal.NewFromInt(50),
		},
		ValueMYR: decimal.NewFromInt(4000),
	}
	valued := []domain.ValuedHolding{
		usd,
		investableHolding("MYRSTK", 6000, 50, ""),
	}

	// Total 10000, VOO target 5000, gap +1000 MYR = 250 USD = 2.5 units at 100.
	actions, _ := Plan(valued, decimal.NewFromInt(4))

	var voo *Action
	for i := range actions {
		if actions[i].Symbol == "VOO" {
			voo = &actions[i]
		}
	}
	if voo == nil {
		t.Fatal("no action for VOO")
	}
	if !voo.AmountUSD.Equal(decimal.NewFromInt(250)) {
		t.Errorf("AmountUSD = %v, want 250", voo.AmountUSD)
	}
	if !voo.Units.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("Units = %v, want 2.5", voo.Units)
	}
}

func TestPlanSortDescendingWithinKind(t *testing.T) {
	valued := []domain.ValuedHolding{
		investableHolding("A", 1000, 30, ""), // gap +2000
		investableHolding("B", 2500, 30, ""), // gap +500
		investableHolding("C", 6500, 40, ""), // gap -2500
	}

	actions, _ := Plan(valued, decimal.NewFromInt(4))

	if len(actions) != 3 {
		t.Fatalf("len(actions) = %d, want 3", len(actions))
	}
	want := []string{"A", "B", "C"}
	for i, sym := range want {
		if actions[i].Symbol != sym {
			t.Errorf("actions[%d] = %s, want %s", i, actions[i].Symbol, sym)
		}
	}
}

func TestPlanOverallocatedTargetsWarn(t *testing.T) {
	valued := []domain.ValuedHolding{
		investableHolding("A", 5000, 80, ""),
		investableHolding("B", 5000, 40, ""),
	}

	_, warnings := Plan(valued, decimal.NewFromInt(4))
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one over-allocation warning", warnings)
	}
}

func TestPlanIgnoresNonInvestable(t *testing.T) {
	valued := []domain.ValuedHolding{
		investableHolding("A", 10000, 100, ""),
		{
			Holding: domain.Holding{
				Symbol:   "EPF",
				Category: domain.CategoryEPF,
				Currency: domain.MYR,
			},
			ValueMYR: decimal.NewFromInt(500000),
		},
	}

	actions, _ := Plan(valued, decimal.NewFromInt(4))
	for _, a := range actions {
		if a.Symbol == "EPF" {
			t.Errorf("non-investable holding received action %v", a)
		}
	}
}
