package www

import (
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/types"
)

func NewBreakdownHandler(logger *slog.Logger, store *savings.Store, fm *filterManager, tm *TemplateManager, currency string) http.HandlerFunc {
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
				handleError(logger, w, "handling breakdown request", err)
			}
			return
		}

		total := dataset.Totals()
		data := struct {
			Currency  string
			Savings   float64
			Breakdown types.SavingsBreakdown
		}{
			Currency:  currency,
			Savings:   total.Savings,
			Breakdown: total.Breakdown,
		}

		if err := tm.ExecuteToWriter("breakdown.html", data, &w); err != nil {
			handleError(logger, w, "handling breakdown request", err)
		}
	}
}
