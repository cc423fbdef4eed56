package export

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
	"github.com/ringgitlab/firetrack/internal/portfolio"
	"github.com/ringgitlab/firetrack/internal/projection"
)

func testView() portfolio.View {
	return portfolio.View{
		Holdings: []domain.ValuedHolding{
			{
				Holding: domain.Holding{
					Symbol:   "VOO",
					Name:     "Vanguard S&P 500",
					Category: domain.CategoryETF,
					Currency: domain.USD,
					Quantity: decimal.NewFromInt(10),
				},
				ValueMYR:      decimal.NewFromInt(19500),
				CostMYR:       decimal.NewFromInt(15000),
				ProfitMYR:     decimal.NewFromInt(4500),
				ProfitPct:     decimal.NewFromInt(30),
				AllocationPct: decimal.NewFromInt(100),
			},
		},
		Totals: domain.PortfolioTotals{
			NetWorth:   decimal.NewFromInt(19500),
			Investable: decimal.NewFromInt(19500),
		},
		Rate: decimal.NewFromFloat(4.5),
	}
}

func TestBuildHoldingRows(t *testing.T) {
	rows := buildHoldingRows(testView())

	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "Symbol" {
		t.Errorf("expected Symbol header, got %v", rows[0][0])
	}

	row := rows[1]
	if row[0] != "VOO" {
		t.Errorf("expected symbol VOO, got %v", row[0])
	}
	if row[2] != "etf" {
		t.Errorf("expected category etf, got %v", row[2])
	}
	if row[6] != 19500.0 {
		t.Errorf("expected value 19500, got %v", row[6])
	}
}

func TestBuildTotalRows(t *testing.T) {
	rows := buildTotalRows(testView(), portfolio.ProjectionView{
		Target: decimal.NewFromInt(1500000),
	})

	byLabel := make(map[string]any, len(rows))
	for _, r := range rows[1:] {
		byLabel[r[0].(string)] = r[1]
	}

	if byLabel["Net worth (MYR)"] != 19500.0 {
		t.Errorf("expected net worth 19500, got %v", byLabel["Net worth (MYR)"])
	}
	if byLabel["Target portfolio (MYR)"] != 1500000.0 {
		t.Errorf("expected target 1500000, got %v", byLabel["Target portfolio (MYR)"])
	}
	if byLabel["USD/MYR rate"] != 4.5 {
		t.Errorf("expected rate 4.5, got %v", byLabel["USD/MYR rate"])
	}
}

func TestBuildProjectionRows(t *testing.T) {
	proj := portfolio.ProjectionView{
		Result: projection.Result{
			Points: []projection.Point{
				{Age: 30, Year: 2025, Liquid: decimal.NewFromInt(100000), EPF: decimal.NewFromInt(50000), Total: decimal.NewFromInt(150000), Target: decimal.NewFromInt(1500000)},
				{Age: 31, Year: 2026, Liquid: decimal.NewFromInt(130000), EPF: decimal.NewFromInt(60000), Total: decimal.NewFromInt(190000), Target: decimal.NewFromInt(1500000)},
			},
		},
	}

	rows := buildProjectionRows(proj)

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != 30 || rows[2][0] != 31 {
		t.Errorf("expected ages 30 and 31, got %v and %v", rows[1][0], rows[2][0])
	}
	if rows[2][4] != 190000.0 {
		t.Errorf("expected total 190000, got %v", rows[2][4])
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	r := BuildReport(testView(), portfolio.ProjectionView{})

	f, err := BuildWorkbook(r)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	for _, name := range []string{SheetHoldings, SheetTotals, SheetProjection} {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			t.Errorf("expected sheet %s to exist (idx %d, err %v)", name, idx, err)
		}
	}

	got, err := f.GetCellValue(SheetHoldings, "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "VOO" {
		t.Errorf("expected A2 = VOO, got %q", got)
	}
}
