package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/angas/solarsavings-go/loader"
	"github.com/angas/solarsavings-go/savings"
)

var (
	readingsCsv        string
	pricesCsv          string
	intervalMinutes    int
	granularityMinutes int
	currency           string
	fromDate           string
	toDate             string
)

var rootCmd = &cobra.Command{
	Use:   "savings_report",
	Short: "Compute solar savings from metering and price CSV exports",
	Long: `savings_report joins inverter meter readings with electricity price bands
and computes what the grid would have cost without the PV system. It can
print a monthly breakdown to the terminal or export CSV, XLSX and PDF
report files.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&readingsCsv, "readings", "", "CSV file with metering samples (required)")
	rootCmd.PersistentFlags().StringVar(&pricesCsv, "prices", "", "CSV file with price bands (required)")
	rootCmd.PersistentFlags().IntVar(&intervalMinutes, "interval", 10, "metering interval length in minutes")
	rootCmd.PersistentFlags().IntVar(&granularityMinutes, "granularity", 60, "price band granularity in minutes")
	rootCmd.PersistentFlags().StringVar(&currency, "currency", "DKK", "display currency")
	rootCmd.PersistentFlags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD, inclusive)")
	rootCmd.PersistentFlags().StringVar(&toDate, "to", "", "end date (YYYY-MM-DD, inclusive)")
	_ = rootCmd.MarkPersistentFlagRequired("readings")
	_ = rootCmd.MarkPersistentFlagRequired("prices")
}

// loadDataset loads both CSV files, enriches them and applies the
// optional date range.
func loadDataset() (*savings.Dataset, error) {
	samples, err := loader.LoadMeteringSamples(readingsCsv)
	if err != nil {
		return nil, fmt.Errorf("loading readings: %w", err)
	}

	bands, err := loader.LoadPriceBands(pricesCsv)
	if err != nil {
		return nil, fmt.Errorf("loading prices: %w", err)
	}

	dataset, err := savings.Enrich(samples, bands, savings.Options{
		SampleInterval:   time.Duration(intervalMinutes) * time.Minute,
		PriceGranularity: time.Duration(granularityMinutes) * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("enriching dataset: %w", err)
	}

	var from, to time.Time
	if fromDate != "" {
		if from, err = time.Parse("2006-01-02", fromDate); err != nil {
			return nil, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if toDate != "" {
		if to, err = time.Parse("2006-01-02", toDate); err != nil {
			return nil, fmt.Errorf("invalid --to date: %w", err)
		}
		to = to.AddDate(0, 0, 1)
	}
	if !from.IsZero() || !to.IsZero() {
		dataset = dataset.Filter(from, to)
		if dataset.Len() == 0 {
			return nil, fmt.Errorf("no intervals in range %s to %s", fromDate, toDate)
		}
	}

	return dataset, nil
}
