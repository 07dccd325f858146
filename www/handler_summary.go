package www

import (
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/angas/solarsavings-go/periods"
	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/types"
)

func grouperFromQuery(r *http.Request) (string, periods.Grouper) {
	switch group := r.URL.Query().Get("group"); group {
	case "day":
		return group, periods.ByDay
	case "week":
		return group, periods.ByISOWeek
	default:
		return "month", periods.ByMonth
	}
}

func NewSummaryHandler(logger *slog.Logger, store *savings.Store, fm *filterManager, tm *TemplateManager, currency string) http.HandlerFunc {
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
				handleError(logger, w, "handling summary request", err)
			}
			return
		}

		group, grouper := grouperFromQuery(r)
		data := struct {
			Currency  string
			Group     string
			Summaries []types.PeriodSummary
			Total     types.GrandTotal
		}{
			Currency:  currency,
			Group:     group,
			Summaries: savings.Aggregate(dataset, grouper),
			Total:     dataset.Totals(),
		}

		if err := tm.ExecuteToWriter("summary.html", data, &w); err != nil {
			handleError(logger, w, "handling summary request", err)
		}
	}
}
