package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/angas/solarsavings-go/periods"
	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/slice"
	"github.com/angas/solarsavings-go/types"
	"github.com/angas/solarsavings-go/types/maybe"
	"github.com/angas/solarsavings-go/www/chartjs"
)

func maybePoint(m maybe.Maybe[float64], decimals int) *float64 {
	if !m.IsValid() {
		return nil
	}
	return chartjs.FixedFloat64(m.Value(), decimals)
}

func NewChartHandler(logger *slog.Logger, store *savings.Store, fm *filterManager, currency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		dataset := fm.filter(w, r).Apply(store.Dataset())
		if dataset == nil || dataset.Len() == 0 {
			writeJSON(logger, w, []chartjs.Chart{})
			return
		}

		monthly := savings.Aggregate(dataset, periods.ByMonth)
		monthLabels := slice.Map(monthly, func(s types.PeriodSummary) string { return s.Period.Label })

		// Chart 1: monthly cost with and without the PV system
		costChart := chartjs.NewChart("bar", "Monthly Cost ("+currency+")", monthLabels)
		costChart.AddDataset("Actual cost", chartjs.ColorGreen,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.ActualCost, 2)
			}))
		costChart.AddDataset("Grid-only cost", chartjs.ColorOrange,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.HypotheticalCost, 2)
			}))
		costChart.AddDataset("Savings", chartjs.ColorBlue,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.Savings, 2)
			}))

		// Chart 2: cumulative savings
		cumChart := chartjs.NewChart("line", "Cumulative Savings ("+currency+")", monthLabels)
		running := 0.0
		cumChart.AddDataset("Savings to date", chartjs.ColorDarkGreen,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				running += s.Savings
				return chartjs.FixedFloat64(running, 2)
			}))

		// Chart 3: monthly energy flow
		energyChart := chartjs.NewChart("bar", "Monthly Energy (kWh)", monthLabels)
		energyChart.AddDataset("Consumption", chartjs.ColorBlue,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.ConsumptionKWh, 1)
			}))
		energyChart.AddDataset("PV production", chartjs.ColorGreen,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.GenerationKWh, 1)
			}))
		energyChart.AddDataset("Grid import", chartjs.ColorRed,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.GridImportKWh, 1)
			}))
		energyChart.AddDataset("Grid export", chartjs.ColorPurple,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return chartjs.FixedFloat64(s.GridExportKWh, 1)
			}))

		// Chart 4: monthly self-sufficiency, gaps where undefined
		selfChart := chartjs.NewChart("line", "Self-Sufficiency (%)", monthLabels)
		selfChart.AddDataset("Self-sufficiency", chartjs.ColorGreen,
			slice.Map(monthly, func(s types.PeriodSummary) *float64 {
				return maybePoint(s.SelfSufficiencyPct, 1)
			}))
		selfChart.Options.Scales["y"] = selfChart.Options.Scales["y"].WithMinAndMax(0, 100)

		// Chart 5: daily average purchase price
		daily := savings.Aggregate(dataset, periods.ByDay)
		priceChart := chartjs.NewChart("line", "Avg Purchase Price ("+currency+"/kWh)",
			slice.Map(daily, func(s types.PeriodSummary) string { return s.Period.Label }))
		priceChart.AddDataset("Avg purchase price", chartjs.ColorOrange,
			slice.Map(daily, func(s types.PeriodSummary) *float64 {
				return maybePoint(s.AvgPurchasePrice, 3)
			}))

		w.Header().Set("Content-Type", "application/json")
		charts := []chartjs.Chart{costChart, cumChart, energyChart, selfChart, priceChart}
		if err := json.NewEncoder(w).Encode(charts); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode data points", http.StatusInternalServerError)
			return
		}
	}
}
