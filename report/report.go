// Package report turns an enriched dataset into the static artifacts: a
// delimited monthly summary, an XLSX workbook and a PDF statement. Both
// the CLI and the scheduled export task go through here.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/types"
)

// SummaryColumns is the stable column-named shape of the period summary
// export, consumable by any renderer.
var SummaryColumns = []string{
	"month",
	"consumption_kwh",
	"grid_import_kwh",
	"grid_export_kwh",
	"pv_kwh",
	"actual_cost",
	"hypothetical_cost",
	"savings",
	"avg_purchase_price",
	"self_sufficiency_pct",
	"savings_rate_pct",
	"missing_prices",
}

type Report struct {
	Currency    string
	GeneratedAt time.Time
	From        time.Time
	To          time.Time
	Intervals   int
	Summaries   []types.PeriodSummary
	Total       types.GrandTotal
}

// New builds a report over the dataset with the built-in monthly grouping.
func New(d *savings.Dataset, currency string) Report {
	from, to := d.TimeRange()
	return Report{
		Currency:    currency,
		GeneratedAt: time.Now().UTC(),
		From:        from,
		To:          to,
		Intervals:   d.Len(),
		Summaries:   savings.AggregateMonthly(d),
		Total:       d.Totals(),
	}
}

// Export writes the requested formats ("csv", "xlsx", "pdf") into dir.
// File names carry the generation date so nightly runs don't clobber
// each other.
func Export(dir string, r Report, formats ...string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	stamp := r.GeneratedAt.Format("20060102")
	var written []string

	for _, format := range formats {
		name := filepath.Join(dir, fmt.Sprintf("savings_summary_%s.%s", stamp, format))

		var data []byte
		var err error
		switch format {
		case "csv":
			data, err = BuildSummaryCSV(r)
		case "xlsx":
			data, err = BuildXLSX(r)
		case "pdf":
			data, err = BuildPDF(r)
		default:
			return written, fmt.Errorf("unknown report format %q", format)
		}
		if err != nil {
			return written, fmt.Errorf("building %s report: %w", format, err)
		}

		if err := os.WriteFile(name, data, 0644); err != nil {
			return written, fmt.Errorf("writing %s report: %w", format, err)
		}
		written = append(written, name)
	}

	return written, nil
}
