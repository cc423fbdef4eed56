// Package export renders the valued portfolio into spreadsheet reports,
// either as a downloadable xlsx workbook or mirrored into a Google Sheet.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/portfolio"
)

// Sheet names shared by the xlsx and Google Sheets writers.
const (
	SheetHoldings   = "HOLDINGS"
	SheetTotals     = "TOTALS"
	SheetProjection = "PROJECTION"
)

// Report holds the three sheets of a portfolio report as row data.
type Report struct {
	Holdings   [][]any
	Totals     [][]any
	Projection [][]any
}

// BuildReport flattens the valued portfolio and projection into sheet rows.
func BuildReport(view portfolio.View, proj portfolio.ProjectionView) Report {
	return Report{
		Holdings:   buildHoldingRows(view),
		Totals:     buildTotalRows(view, proj),
		Projection: buildProjectionRows(proj),
	}
}

// buildHoldingRows builds the HOLDINGS sheet data.
// Columns: Symbol | Name | Category | Currency | Quantity | Price | Value MYR | Cost MYR | P/L MYR | P/L % | Alloc %
func buildHoldingRows(view portfolio.View) [][]any {
	rows := make([][]any, 0, len(view.Holdings)+1)
	rows = append(rows, []any{
		"Symbol", "Name", "Category", "Currency",
		"Quantity", "Price", "Value MYR", "Cost MYR",
		"P/L MYR", "P/L %", "Alloc %",
	})

	for _, h := range view.Holdings {
		rows = append(rows, []any{
			h.Symbol, h.Name, string(h.Category), string(h.Currency),
			toFloat(h.Quantity), toFloat(h.Price),
			toFloat(h.ValueMYR), toFloat(h.CostMYR),
			toFloat(h.ProfitMYR), toFloat(h.ProfitPct),
			toFloat(h.AllocationPct),
		})
	}

	return rows
}

// buildTotalRows builds the TOTALS sheet data as label/value pairs.
func buildTotalRows(view portfolio.View, proj portfolio.ProjectionView) [][]any {
	t := view.Totals
	return [][]any{
		{"Metric", "Value"},
		{"Net worth (MYR)", toFloat(t.NetWorth)},
		{"Investable (MYR)", toFloat(t.Investable)},
		{"Investable cost (MYR)", toFloat(t.InvestableCost)},
		{"Investable P/L (MYR)", toFloat(t.InvestableProfit)},
		{"Investable P/L (%)", toFloat(t.ProfitPct)},
		{"Savings (MYR)", toFloat(t.Savings)},
		{"EPF (MYR)", toFloat(t.EPF)},
		{"Target portfolio (MYR)", toFloat(proj.Target)},
		{"Investable progress", toFloat(t.InvestableProgress)},
		{"Net worth progress", toFloat(t.NetWorthProgress)},
		{"USD/MYR rate", toFloat(view.Rate)},
	}
}

// buildProjectionRows builds the PROJECTION sheet data.
// Columns: Age | Year | Liquid | EPF | Total | Target
func buildProjectionRows(proj portfolio.ProjectionView) [][]any {
	rows := make([][]any, 0, len(proj.Points)+1)
	rows = append(rows, []any{"Age", "Year", "Liquid", "EPF", "Total", "Target"})

	for _, p := range proj.Points {
		rows = append(rows, []any{
			p.Age, p.Year,
			toFloat(p.Liquid), toFloat(p.EPF),
			toFloat(p.Total), toFloat(p.Target),
		})
	}

	return rows
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
