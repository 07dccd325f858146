package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
api:
  address: "127.0.0.1"
  port: 8080
data:
  readings_csv: "data/readings.csv"
  prices_csv: "data/prices.csv"
  interval_minutes: 5
  currency: "SEK"
  watch: false
database:
  path: "data/app.db"
report:
  output_dir: "out"
  run_at: "0 4 * * *"
logging:
  console_level: "DEBUG"
`)

	cnfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cnfg.Api.Port != 8080 || cnfg.Api.Address != "127.0.0.1" {
		t.Errorf("unexpected api config: %+v", cnfg.Api)
	}
	if cnfg.Data.ReadingsCsv != "data/readings.csv" {
		t.Errorf("unexpected readings path: %q", cnfg.Data.ReadingsCsv)
	}
	if got := cnfg.Data.GetSampleInterval(); got != 5*time.Minute {
		t.Errorf("expected 5m interval, got %v", got)
	}
	if cnfg.Data.GetCurrency() != "SEK" {
		t.Errorf("expected currency SEK, got %q", cnfg.Data.GetCurrency())
	}
	if cnfg.Data.GetWatch() {
		t.Error("expected watch disabled")
	}
	if cnfg.Report.GetOutputDir() != "out" || cnfg.Report.GetRunAt() != "0 4 * * *" {
		t.Errorf("unexpected report config: %+v", cnfg.Report)
	}
}

func TestConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
api:
  port: 8080
data:
  readings_csv: "readings.csv"
  prices_csv: "prices.csv"
database:
  path: "app.db"
`)

	cnfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cnfg.Data.GetSampleInterval(); got != 10*time.Minute {
		t.Errorf("expected default 10m interval, got %v", got)
	}
	if got := cnfg.Data.GetPriceGranularity(); got != time.Hour {
		t.Errorf("expected default hourly granularity, got %v", got)
	}
	if cnfg.Data.GetCurrency() != "DKK" {
		t.Errorf("expected default currency DKK, got %q", cnfg.Data.GetCurrency())
	}
	if !cnfg.Data.GetWatch() {
		t.Error("expected watch enabled by default")
	}
	if cnfg.Report.GetOutputDir() != "reports" {
		t.Errorf("expected default output dir, got %q", cnfg.Report.GetOutputDir())
	}
	if cnfg.Database.GetBackupRetentionDays() != 90 {
		t.Errorf("expected 90 day retention default, got %d", cnfg.Database.GetBackupRetentionDays())
	}
	if cnfg.Gui.GetTimezone() != "UTC" {
		t.Errorf("expected UTC default, got %q", cnfg.Gui.GetTimezone())
	}
}
