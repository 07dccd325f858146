package task

import (
	"context"
	"log/slog"

	"github.com/angas/solarsavings-go/config"
	"github.com/angas/solarsavings-go/database"
	"github.com/angas/solarsavings-go/savings"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	ReportTask      func()
	MaintenanceTask func()
}

func NewTasks(db *database.Database, store *savings.Store, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		ReportTask:      NewReportTask(logger.With(slog.String("task", "report")), store, cnfg),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Report.GetRunAt(), t.ReportTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
