package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/angas/solarsavings-go/types/maybe"
)

// BuildXLSX renders the report as a workbook with a summary sheet and a
// monthly breakdown sheet.
func BuildXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	monthlySheet := "monthly"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, fmt.Errorf("creating monthly sheet: %w", err)
	}

	total := r.Total

	_ = f.SetCellValue(summarySheet, "A1", "Solar Savings Analysis")
	_ = f.SetCellValue(summarySheet, "A3", "Period")
	_ = f.SetCellValue(summarySheet, "B3", fmt.Sprintf("%s to %s", r.From.Format("2006-01-02"), r.To.Format("2006-01-02")))
	_ = f.SetCellValue(summarySheet, "A4", "Currency")
	_ = f.SetCellValue(summarySheet, "B4", r.Currency)
	_ = f.SetCellValue(summarySheet, "A5", "Interval records")
	_ = f.SetCellValue(summarySheet, "B5", r.Intervals)
	_ = f.SetCellValue(summarySheet, "A6", "Records missing price data")
	_ = f.SetCellValue(summarySheet, "B6", total.MissingPrices)

	_ = f.SetCellValue(summarySheet, "A8", "Total Consumption (kWh)")
	_ = f.SetCellValue(summarySheet, "B8", total.ConsumptionKWh)
	_ = f.SetCellValue(summarySheet, "A9", "Total Grid Import (kWh)")
	_ = f.SetCellValue(summarySheet, "B9", total.GridImportKWh)
	_ = f.SetCellValue(summarySheet, "A10", "Total Grid Export (kWh)")
	_ = f.SetCellValue(summarySheet, "B10", total.GridExportKWh)
	_ = f.SetCellValue(summarySheet, "A11", "Total PV Generation (kWh)")
	_ = f.SetCellValue(summarySheet, "B11", total.GenerationKWh)
	_ = f.SetCellValue(summarySheet, "A12", "Hypothetical Cost")
	_ = f.SetCellValue(summarySheet, "B12", total.HypotheticalCost)
	_ = f.SetCellValue(summarySheet, "A13", "Actual Cost")
	_ = f.SetCellValue(summarySheet, "B13", total.ActualCost)
	_ = f.SetCellValue(summarySheet, "A14", "Total Savings")
	_ = f.SetCellValue(summarySheet, "B14", total.Savings)
	_ = f.SetCellValue(summarySheet, "A15", "Savings Rate (%)")
	_ = f.SetCellValue(summarySheet, "B15", maybe.FormatFloat(total.SavingsRatePct, 1))
	_ = f.SetCellValue(summarySheet, "A16", "Self-Sufficiency (%)")
	_ = f.SetCellValue(summarySheet, "B16", maybe.FormatFloat(total.SelfSufficiencyPct, 1))

	_ = f.SetCellValue(summarySheet, "A18", "Self-Consumption Value")
	_ = f.SetCellValue(summarySheet, "B18", maybe.FormatFloat(total.Breakdown.SelfConsumptionValue, 2))
	_ = f.SetCellValue(summarySheet, "A19", "Export Revenue")
	_ = f.SetCellValue(summarySheet, "B19", total.Breakdown.ExportRevenue)
	_ = f.SetCellValue(summarySheet, "A20", "Exported at Positive Prices (kWh)")
	_ = f.SetCellValue(summarySheet, "B20", total.Breakdown.ExportedAtPositiveKWh)
	_ = f.SetCellValue(summarySheet, "A21", "Exported at Floored Prices (kWh)")
	_ = f.SetCellValue(summarySheet, "B21", total.Breakdown.ExportedAtFlooredKWh)

	for i, col := range SummaryColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("naming header cell: %w", err)
		}
		_ = f.SetCellValue(monthlySheet, cell, col)
	}

	for row, s := range r.Summaries {
		record := summaryRecord(s)
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("naming cell: %w", err)
			}
			_ = f.SetCellValue(monthlySheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
