package report

import (
	"fmt"
	"io"

	"github.com/angas/solarsavings-go/types/maybe"
)

// RenderText writes the monthly breakdown and totals as plain text, the
// format the CLI prints to stdout.
func RenderText(w io.Writer, r Report) error {
	total := r.Total

	fmt.Fprintf(w, "Solar savings analysis %s to %s (%d interval records)\n",
		r.From.Format("2006-01-02"), r.To.Format("2006-01-02"), r.Intervals)
	if total.MissingPrices > 0 {
		fmt.Fprintf(w, "Warning: %d records missing price data (excluded from cost sums)\n", total.MissingPrices)
	}
	fmt.Fprintln(w)

	for _, s := range r.Summaries {
		fmt.Fprintf(w, "Month: %s\n", s.Period.Label)
		fmt.Fprintf(w, "  Consumption:        %10.1f kWh\n", s.ConsumptionKWh)
		fmt.Fprintf(w, "  Grid Import:        %10.1f kWh\n", s.GridImportKWh)
		fmt.Fprintf(w, "  Grid Export:        %10.1f kWh\n", s.GridExportKWh)
		fmt.Fprintf(w, "  PV Generation:      %10.1f kWh\n", s.GenerationKWh)
		fmt.Fprintf(w, "  Self-Sufficiency:   %10s %%\n", maybe.FormatFloat(s.SelfSufficiencyPct, 1))
		fmt.Fprintf(w, "  Avg Purchase Price: %10s %s/kWh\n", maybe.FormatFloat(s.AvgPurchasePrice, 3), r.Currency)
		fmt.Fprintf(w, "  Hypothetical Cost:  %10.2f %s\n", s.HypotheticalCost, r.Currency)
		fmt.Fprintf(w, "  Actual Cost:        %10.2f %s\n", s.ActualCost, r.Currency)
		fmt.Fprintf(w, "  Savings:            %10.2f %s (rate %s %%)\n", s.Savings, r.Currency, maybe.FormatFloat(s.SavingsRatePct, 1))
		if s.MissingPrices > 0 {
			fmt.Fprintf(w, "  Missing price data: %10d records\n", s.MissingPrices)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "TOTAL")
	fmt.Fprintf(w, "  Consumption:        %10.1f kWh\n", total.ConsumptionKWh)
	fmt.Fprintf(w, "  Grid Import:        %10.1f kWh\n", total.GridImportKWh)
	fmt.Fprintf(w, "  Grid Export:        %10.1f kWh\n", total.GridExportKWh)
	fmt.Fprintf(w, "  Self-Sufficiency:   %10s %%\n", maybe.FormatFloat(total.SelfSufficiencyPct, 1))
	fmt.Fprintf(w, "  Hypothetical Cost:  %10.2f %s\n", total.HypotheticalCost, r.Currency)
	fmt.Fprintf(w, "  Actual Cost:        %10.2f %s\n", total.ActualCost, r.Currency)
	fmt.Fprintf(w, "  Total Savings:      %10.2f %s (rate %s %%)\n", total.Savings, r.Currency, maybe.FormatFloat(total.SavingsRatePct, 1))
	fmt.Fprintf(w, "  Effective Cost:     %10s %s/kWh (grid only %s)\n",
		maybe.FormatFloat(total.EffectiveCostPerKWh, 3), r.Currency, maybe.FormatFloat(total.GridOnlyCostPerKWh, 3))
	fmt.Fprintln(w)

	b := total.Breakdown
	fmt.Fprintln(w, "SAVINGS SOURCES")
	fmt.Fprintf(w, "  Self-Consumed:      %10.1f kWh (value %s %s)\n", b.SelfConsumedKWh, maybe.FormatFloat(b.SelfConsumptionValue, 2), r.Currency)
	fmt.Fprintf(w, "  Export Revenue:     %10.2f %s (%.1f kWh at positive prices)\n", b.ExportRevenue, r.Currency, b.ExportedAtPositiveKWh)
	if b.ExportedAtFlooredKWh > 0 {
		fmt.Fprintf(w, "  Exported at <= 0:   %10.1f kWh (no revenue)\n", b.ExportedAtFlooredKWh)
	}

	return nil
}
