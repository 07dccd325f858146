package www

import (
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/slice"
	"github.com/angas/solarsavings-go/types"
)

func NewIntervalsHandler(logger *slog.Logger, store *savings.Store, fm *filterManager, tm *TemplateManager, currency string) http.HandlerFunc {
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
				handleError(logger, w, "handling intervals request", err)
			}
			return
		}

		page := intOrDefault(r, "page", 1)
		if page < 1 {
			page = 1
		}
		pageSize := intOrDefault(r, "pageSize", 50)
		if pageSize < 1 {
			pageSize = 50
		}

		intervals := dataset.Intervals()
		missingOnly := r.URL.Query().Get("missing") == "1"
		if missingOnly {
			intervals = slice.Filter(intervals, func(e types.EnrichedInterval) bool {
				return !e.HasPrice()
			})
		}
		offset := (page - 1) * pageSize
		if offset > len(intervals) {
			offset = len(intervals)
		}
		end := min(offset+pageSize, len(intervals))
		lastPage := end == len(intervals)

		data := struct {
			Currency    string
			Page        int
			PageSize    int
			LastPage    bool
			MissingOnly bool
			Intervals   []types.EnrichedInterval
		}{
			Currency:    currency,
			Page:        page,
			PageSize:    pageSize,
			LastPage:    lastPage,
			MissingOnly: missingOnly,
			Intervals:   intervals[offset:end],
		}

		if err := tm.ExecuteToWriter("intervals.html", data, &w); err != nil {
			handleError(logger, w, "handling intervals request", err)
		}
	}
}
