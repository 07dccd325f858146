package task

import (
	"log/slog"

	"github.com/angas/solarsavings-go/config"
	"github.com/angas/solarsavings-go/report"
	"github.com/angas/solarsavings-go/savings"
)

// NewReportTask exports the nightly report artifacts for the full dataset.
func NewReportTask(logger *slog.Logger, store *savings.Store, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running report task...")

		dataset := store.Dataset()
		if dataset == nil || dataset.Len() == 0 {
			logger.Warn("no dataset loaded, skipping report export")
			return
		}

		r := report.New(dataset, cnfg.Data.GetCurrency())
		written, err := report.Export(cnfg.Report.GetOutputDir(), r, "csv", "xlsx", "pdf")
		if err != nil {
			logger.Error("report export error", slog.Any("error", err))
			return
		}

		logger.Info("report task done", slog.Int("files", len(written)))
	}
}
