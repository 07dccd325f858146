package types

import (
	"time"

	"github.com/angas/solarsavings-go/periods"
	"github.com/angas/solarsavings-go/types/maybe"
)

// MeteringSample is one fixed-interval inverter reading. Energy fields are
// in the meter's native accumulated sub-unit (watts accumulated over one
// interval), not kWh. Immutable once loaded.
type MeteringSample struct {
	Time             time.Time
	Consumption      float64
	GridImport       float64
	GridExport       float64
	Generation       float64
	BatteryCharge    float64
	BatteryDischarge float64
}

// PriceBand holds the purchase and sell price over [ValidFrom, ValidTo).
// SellPrice may be negative.
type PriceBand struct {
	ValidFrom     time.Time
	ValidTo       time.Time
	PurchasePrice float64
	SellPrice     float64
}

func (b PriceBand) Covers(t time.Time) bool {
	return !t.Before(b.ValidFrom) && t.Before(b.ValidTo)
}

// EnrichedInterval is a MeteringSample joined with its price band plus all
// derived quantities. Cost fields are absent (not zero) when no band
// covered the sample.
type EnrichedInterval struct {
	Sample MeteringSample

	ConsumptionKWh      float64
	GridImportKWh       float64
	GridExportKWh       float64
	GenerationKWh       float64
	BatteryChargeKWh    float64
	BatteryDischargeKWh float64

	PurchasePrice     maybe.Maybe[float64]
	SellPrice         maybe.Maybe[float64]
	SellPriceAdjusted maybe.Maybe[float64]
	ActualCost        maybe.Maybe[float64]
	HypotheticalCost  maybe.Maybe[float64]
	Savings           maybe.Maybe[float64]
}

// HasPrice reports whether the interval found a matching price band. All
// six price/cost fields are present or absent together.
func (e EnrichedInterval) HasPrice() bool {
	return e.PurchasePrice.IsValid()
}

// PeriodSummary is one aggregation row. Cost sums cover only the intervals
// that had a price; MissingPrices says how many did not.
type PeriodSummary struct {
	Period periods.Period

	ConsumptionKWh      float64
	GridImportKWh       float64
	GridExportKWh       float64
	GenerationKWh       float64
	BatteryChargeKWh    float64
	BatteryDischargeKWh float64

	ActualCost       float64
	HypotheticalCost float64
	Savings          float64

	AvgPurchasePrice   maybe.Maybe[float64]
	SelfSufficiencyPct maybe.Maybe[float64]
	SavingsRatePct     maybe.Maybe[float64]

	Intervals     int
	MissingPrices int
}

// SavingsBreakdown splits the savings into their two sources: consumption
// covered by own generation, and export revenue. Export kWh sold while the
// sell price was at or below zero earns nothing (export-price floor).
type SavingsBreakdown struct {
	SelfConsumedKWh       float64
	SelfConsumptionValue  maybe.Maybe[float64]
	ExportRevenue         float64
	ExportedAtPositiveKWh float64
	ExportedAtFlooredKWh  float64
}

// GrandTotal is the whole-dataset summary with per-kWh cost comparison.
type GrandTotal struct {
	PeriodSummary
	EffectiveCostPerKWh maybe.Maybe[float64]
	GridOnlyCostPerKWh  maybe.Maybe[float64]
	Breakdown           SavingsBreakdown
}
