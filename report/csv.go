package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/angas/solarsavings-go/types"
	"github.com/angas/solarsavings-go/types/maybe"
)

// BuildSummaryCSV renders the monthly summary table. Undefined ratios are
// written as "N/A", never as 0.
func BuildSummaryCSV(r Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(SummaryColumns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, s := range r.Summaries {
		if err := w.Write(summaryRecord(s)); err != nil {
			return nil, fmt.Errorf("writing csv row for %s: %w", s.Period, err)
		}
	}

	total := r.Total.PeriodSummary
	if err := w.Write(summaryRecord(total)); err != nil {
		return nil, fmt.Errorf("writing csv total row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

func summaryRecord(s types.PeriodSummary) []string {
	return []string{
		s.Period.Label,
		formatFixed(s.ConsumptionKWh, 1),
		formatFixed(s.GridImportKWh, 1),
		formatFixed(s.GridExportKWh, 1),
		formatFixed(s.GenerationKWh, 1),
		formatFixed(s.ActualCost, 2),
		formatFixed(s.HypotheticalCost, 2),
		formatFixed(s.Savings, 2),
		maybe.FormatFloat(s.AvgPurchasePrice, 3),
		maybe.FormatFloat(s.SelfSufficiencyPct, 1),
		maybe.FormatFloat(s.SavingsRatePct, 1),
		strconv.Itoa(s.MissingPrices),
	}
}

func formatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
