// Package ingest moves metering and price data from the CSV exports into
// the enriched in-memory dataset, caching the raw rows in SQLite so the
// application can start without the source files present.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/angas/solarsavings-go/config"
	"github.com/angas/solarsavings-go/database"
	"github.com/angas/solarsavings-go/loader"
	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/types"
)

type Service struct {
	logger *slog.Logger
	db     *database.Database
	store  *savings.Store
	cnfg   config.AppConfigData
}

func New(logger *slog.Logger, db *database.Database, store *savings.Store, cnfg config.AppConfigData) *Service {
	return &Service{
		logger: logger.With("module", "ingest"),
		db:     db,
		store:  store,
		cnfg:   cnfg,
	}
}

// RefreshFromFiles loads both CSV exports, replaces the SQLite cache and
// publishes a freshly enriched dataset. A failure leaves the previous
// dataset in place.
func (s *Service) RefreshFromFiles(ctx context.Context) error {
	samples, err := loader.LoadMeteringSamples(s.cnfg.ReadingsCsv)
	if err != nil {
		return fmt.Errorf("loading readings from %s: %w", s.cnfg.ReadingsCsv, err)
	}

	bands, err := loader.LoadPriceBands(s.cnfg.PricesCsv)
	if err != nil {
		return fmt.Errorf("loading prices from %s: %w", s.cnfg.PricesCsv, err)
	}

	if err := s.db.ReplaceMeteringSamples(ctx, samples); err != nil {
		return fmt.Errorf("caching readings: %w", err)
	}
	if err := s.db.ReplacePriceBands(ctx, bands); err != nil {
		return fmt.Errorf("caching prices: %w", err)
	}

	s.logger.Info("data files loaded",
		slog.Int("samples", len(samples)),
		slog.Int("priceBands", len(bands)))

	return s.publish(samples, bands)
}

// RefreshFromCache rebuilds the dataset from the SQLite cache without
// touching the CSV files.
func (s *Service) RefreshFromCache(ctx context.Context) error {
	samples, err := s.db.GetMeteringSamples(ctx)
	if err != nil {
		return fmt.Errorf("reading cached samples: %w", err)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no cached metering samples")
	}

	bands, err := s.db.GetPriceBands(ctx)
	if err != nil {
		return fmt.Errorf("reading cached price bands: %w", err)
	}

	s.logger.Info("dataset restored from cache",
		slog.Int("samples", len(samples)),
		slog.Int("priceBands", len(bands)))

	return s.publish(samples, bands)
}

// Run does the initial load. The CSV files are preferred, the cache is the
// fallback when they are missing or broken and a cached dataset exists.
func (s *Service) Run(ctx context.Context) error {
	fileErr := s.RefreshFromFiles(ctx)
	if fileErr == nil {
		return nil
	}

	s.logger.Warn("file load failed, trying cache", slog.Any("error", fileErr))
	if cacheErr := s.RefreshFromCache(ctx); cacheErr != nil {
		return fmt.Errorf("file load failed (%v), cache load failed: %w", fileErr, cacheErr)
	}
	return nil
}

func (s *Service) publish(samples []types.MeteringSample, bands []types.PriceBand) error {
	dataset, err := savings.Enrich(samples, bands, savings.Options{
		SampleInterval:   s.cnfg.GetSampleInterval(),
		PriceGranularity: s.cnfg.GetPriceGranularity(),
	})
	if err != nil {
		return fmt.Errorf("enriching dataset: %w", err)
	}

	if n := dataset.MissingPriceCount(); n > 0 {
		s.logger.Warn("intervals without price data", slog.Int("count", n))
	}

	s.store.Set(dataset)
	return nil
}
