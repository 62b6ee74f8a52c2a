package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order.
const (
	SheetSummary  = "Summary"
	SheetCosts    = "Costs"
	SheetSeasonal = "Seasonal"
)

// WriteXLSX writes the report as a three-sheet workbook.
func WriteXLSX(w io.Writer, r Report) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, r Report) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with Sheet1; reuse it as the summary.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}
	for _, name := range []string{SheetCosts, SheetSeasonal} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", name, err)
		}
	}

	summary := make([][]any, 0, len(r.Metrics.Health)+20)
	for _, row := range SummaryRows(r.Metrics) {
		summary = append(summary, []any{row.Category, row.Value, row.Notes})
	}
	if err := writeSheet(f, SheetSummary, Header, summary); err != nil {
		return nil, err
	}

	costs := make([][]any, 0, len(r.Costs))
	for _, c := range r.Costs {
		costs = append(costs, []any{c.Category, cell(c.Revenue), cell(c.Rate), cell(c.Cogs), cell(c.SharePercent)})
	}
	if err := writeSheet(f, SheetCosts, []string{"Category", "Revenue", "COGS Rate", "COGS", "Share %"}, costs); err != nil {
		return nil, err
	}

	months := make([][]any, 0, len(r.Months))
	for _, m := range r.Months {
		months = append(months, []any{m.Label, cell(m.Revenue), cell(m.Cost), cell(m.Profit), cell(m.MarginPct), cell(m.Customers)})
	}
	if err := writeSheet(f, SheetSeasonal, []string{"Month", "Revenue", "Cost", "Profit", "Margin %", "Customers"}, months); err != nil {
		return nil, err
	}

	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			if err := setCell(f, sheet, c+1, r+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, name, v); err != nil {
		return fmt.Errorf("setting %s!%s: %w", sheet, name, err)
	}
	return nil
}

// cell keeps NaN and Inf out of the workbook.
func cell(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return v
}
