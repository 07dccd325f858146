package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/solarsavings-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Key for the session cookie that remembers the active date filter
	SessionKey *string `mapstructure:"session_key"`
}

func (a AppConfigApi) GetSessionKey() string {
	if a.SessionKey == nil {
		return "solarsavings-dev-key"
	}
	return *a.SessionKey
}

type AppConfigData struct {
	// CSV export with the 10-minute inverter readings
	ReadingsCsv string `mapstructure:"readings_csv"`
	// CSV export with the hourly purchase/sell prices
	PricesCsv string `mapstructure:"prices_csv"`
	// Metering interval length in minutes, default: 10
	IntervalMinutes *int `mapstructure:"interval_minutes"`
	// Price band granularity in minutes, default: 60
	PriceGranularityMinutes *int `mapstructure:"price_granularity_minutes"`
	// Display currency for costs, default: "DKK"
	Currency *string `mapstructure:"currency"`
	// Reload and re-enrich when the CSV files change, default: true
	Watch *bool `mapstructure:"watch"`
}

func (d AppConfigData) GetSampleInterval() time.Duration {
	if d.IntervalMinutes == nil || *d.IntervalMinutes < 1 {
		return 10 * time.Minute
	}
	return time.Duration(*d.IntervalMinutes) * time.Minute
}

func (d AppConfigData) GetPriceGranularity() time.Duration {
	if d.PriceGranularityMinutes == nil || *d.PriceGranularityMinutes < 1 {
		return time.Hour
	}
	return time.Duration(*d.PriceGranularityMinutes) * time.Minute
}

func (d AppConfigData) GetCurrency() string {
	if d.Currency == nil {
		return "DKK"
	}
	return *d.Currency
}

func (d AppConfigData) GetWatch() bool {
	if d.Watch == nil {
		return true
	}
	return *d.Watch
}

type AppConfigDatabase struct {
	Path string
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigReport struct {
	// Directory report artifacts are written to, default: "reports"
	OutputDir *string `mapstructure:"output_dir"`
	// Cron expression for the scheduled export, default: "15 3 * * *"
	RunAt *string `mapstructure:"run_at"`
}

func (r AppConfigReport) GetOutputDir() string {
	if r.OutputDir == nil {
		return "reports"
	}
	return *r.OutputDir
}

func (r AppConfigReport) GetRunAt() string {
	if r.RunAt == nil {
		return "15 3 * * *"
	}
	return *r.RunAt
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "UTC"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Data     AppConfigData
	Database AppConfigDatabase
	Report   AppConfigReport
	Gui      AppConfigGui
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
