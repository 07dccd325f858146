package www

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/solarsavings-go/report"
	"github.com/angas/solarsavings-go/savings"
)

func NewDownloadHandler(logger *slog.Logger, store *savings.Store, fm *filterManager, m *metrics, currency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		dataset := fm.filter(w, r).Apply(store.Dataset())
		if dataset == nil || dataset.Len() == 0 {
			http.Error(w, "no data for the selected range", http.StatusNotFound)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "csv"
		}

		var (
			payload     []byte
			contentType string
			err         error
		)
		switch format {
		case "csv":
			contentType = "text/csv"
			payload, err = report.BuildSummaryCSV(report.New(dataset, currency))
		case "xlsx":
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			payload, err = report.BuildXLSX(report.New(dataset, currency))
		case "pdf":
			contentType = "application/pdf"
			payload, err = report.BuildPDF(report.New(dataset, currency))
		default:
			http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
			return
		}
		if err != nil {
			handleError(logger, w, "building report download", err)
			return
		}

		m.downloadsTotal.WithLabelValues(format).Inc()

		filename := fmt.Sprintf("savings_summary_%s.%s", time.Now().UTC().Format("20060102"), format)
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(payload); err != nil {
			logger.Error("writing report download", slog.Any("error", err))
		}
	}
}
