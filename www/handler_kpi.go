package www

import (
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/types/maybe"
)

type kpiTemplData struct {
	Currency           string
	From               string
	To                 string
	Filter             DateFilter
	Intervals          int
	MissingPrices      int
	ConsumptionKWh     float64
	GenerationKWh      float64
	GridImportKWh      float64
	GridExportKWh      float64
	ActualCost         float64
	HypotheticalCost   float64
	Savings            float64
	AvgPurchasePrice   maybe.Maybe[float64]
	SelfSufficiencyPct maybe.Maybe[float64]
	SavingsRatePct     maybe.Maybe[float64]
	EffectiveCost      maybe.Maybe[float64]
	GridOnlyCost       maybe.Maybe[float64]
}

func newKpiTemplData(d *savings.Dataset, filter DateFilter, currency string) kpiTemplData {
	total := d.Totals()
	from, to := d.TimeRange()
	return kpiTemplData{
		Currency:           currency,
		From:               displayTime(from, "2006-01-02 15:04"),
		To:                 displayTime(to, "2006-01-02 15:04"),
		Filter:             filter,
		Intervals:          total.Intervals,
		MissingPrices:      total.MissingPrices,
		ConsumptionKWh:     total.ConsumptionKWh,
		GenerationKWh:      total.GenerationKWh,
		GridImportKWh:      total.GridImportKWh,
		GridExportKWh:      total.GridExportKWh,
		ActualCost:         total.ActualCost,
		HypotheticalCost:   total.HypotheticalCost,
		Savings:            total.Savings,
		AvgPurchasePrice:   total.AvgPurchasePrice,
		SelfSufficiencyPct: total.SelfSufficiencyPct,
		SavingsRatePct:     total.SavingsRatePct,
		EffectiveCost:      total.EffectiveCostPerKWh,
		GridOnlyCost:       total.GridOnlyCostPerKWh,
	}
}

func NewKpiHandler(logger *slog.Logger, store *savings.Store, fm *filterManager, tm *TemplateManager, currency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		filter := fm.filter(w, r)
		dataset := filter.Apply(store.Dataset())
		if dataset == nil || dataset.Len() == 0 {
			if err := tm.ExecuteToWriter("no_data.html", filter, &w); err != nil {
				handleError(logger, w, "handling kpi request", err)
			}
			return
		}

		data := newKpiTemplData(dataset, filter, currency)
		if err := tm.ExecuteToWriter("kpi.html", data, &w); err != nil {
			handleError(logger, w, "handling kpi request", err)
		}
	}
}
