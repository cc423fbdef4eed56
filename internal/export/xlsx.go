package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders a report into an xlsx workbook.
func BuildWorkbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetHoldings, r.Holdings},
		{SheetTotals, r.Totals},
		{SheetProjection, r.Projection},
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", s.name, err)
		}
		for i, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, fmt.Errorf("addressing row %d: %w", i+1, err)
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return nil, fmt.Errorf("writing sheet %s: %w", s.name, err)
			}
		}
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	return f, nil
}

// WriteWorkbook renders a report and streams the xlsx bytes to w.
func WriteWorkbook(r Report, w io.Writer) error {
	f, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// XLSXWriter implements ReportWriter by saving the workbook to a local path.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates an XLSXWriter targeting the given file path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write renders the report and saves it to the configured path.
func (w *XLSXWriter) Write(_ context.Context, r Report) error {
	f, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook to %s: %w", w.path, err)
	}
	return nil
}
