package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/angas/solarsavings-go/types/maybe"
)

// BuildPDF renders the report as a statement: headline figures, the
// monthly table and a savings bar chart.
func BuildPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	total := r.Total

	pdf.Cell(0, 8, "Solar Savings Analysis")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", r.From.Format("2006-01-02"), r.To.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Interval records: %d (%d missing price data)", r.Intervals, total.MissingPrices))
	pdf.Ln(8)

	pdf.Cell(0, 6, fmt.Sprintf("Hypothetical cost (grid only): %.2f %s", total.HypotheticalCost, r.Currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Actual cost: %.2f %s", total.ActualCost, r.Currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total savings: %.2f %s (rate %s%%)", total.Savings, r.Currency, maybe.FormatFloat(total.SavingsRatePct, 1)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Self-sufficiency: %s%%", maybe.FormatFloat(total.SelfSufficiencyPct, 1)))
	pdf.Ln(8)

	// Monthly table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(22, 6, "Month", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 6, "Consumption", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 6, "Import", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 6, "Export", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "Actual", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "Savings", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Self-suff.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Missing", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, s := range r.Summaries {
		pdf.CellFormat(22, 6, s.Period.Label, "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("%.1f", s.ConsumptionKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.1f", s.GridImportKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.1f", s.GridExportKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, fmt.Sprintf("%.2f", s.ActualCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, fmt.Sprintf("%.2f", s.Savings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, maybe.FormatFloat(s.SelfSufficiencyPct, 1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", s.MissingPrices), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	drawSavingsBars(pdf, r)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawSavingsBars draws a simple monthly savings bar chart below the
// table. Negative savings render below the baseline.
func drawSavingsBars(pdf *gofpdf.Fpdf, r Report) {
	if len(r.Summaries) == 0 {
		return
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly savings (%s)", r.Currency))
	pdf.Ln(8)

	maxAbs := 0.0
	for _, s := range r.Summaries {
		if v := s.Savings; v > maxAbs {
			maxAbs = v
		} else if -v > maxAbs {
			maxAbs = -v
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	const chartHeight = 40.0
	left := pdf.GetX() + 10
	baseline := pdf.GetY() + chartHeight
	barWidth := 170.0 / float64(len(r.Summaries))

	pdf.SetFillColor(76, 175, 80)
	pdf.SetFont("Arial", "", 7)
	for i, s := range r.Summaries {
		h := s.Savings / maxAbs * chartHeight
		x := left + float64(i)*barWidth
		if h >= 0 {
			pdf.Rect(x, baseline-h, barWidth*0.8, h, "F")
		} else {
			pdf.Rect(x, baseline, barWidth*0.8, -h, "F")
		}
		pdf.Text(x, baseline+4, s.Period.Label)
	}
	pdf.SetY(baseline + 8)
}
