package savings

import (
	"time"

	"github.com/angas/solarsavings-go/types"
	"github.com/angas/solarsavings-go/types/maybe"
)

// Dataset is the enriched interval set, produced once by Enrich and owned
// by the caller. Filtering returns a new Dataset sharing the already
// enriched records, so changing a date range never re-runs alignment or
// cost derivation.
type Dataset struct {
	intervals     []types.EnrichedInterval
	interval      time.Duration
	missingPrices int
}

func (d *Dataset) Intervals() []types.EnrichedInterval {
	return d.intervals
}

func (d *Dataset) Len() int {
	return len(d.intervals)
}

// SampleInterval is the metering interval length the dataset was
// normalized with.
func (d *Dataset) SampleInterval() time.Duration {
	return d.interval
}

// MissingPriceCount is the number of intervals that found no price band.
func (d *Dataset) MissingPriceCount() int {
	return d.missingPrices
}

// TimeRange returns the first and last sample timestamps.
func (d *Dataset) TimeRange() (time.Time, time.Time) {
	if len(d.intervals) == 0 {
		return time.Time{}, time.Time{}
	}
	return d.intervals[0].Sample.Time, d.intervals[len(d.intervals)-1].Sample.Time
}

// Filter keeps intervals with from <= t < to. A zero bound is open. The
// receiver is untouched.
func (d *Dataset) Filter(from, to time.Time) *Dataset {
	filtered := make([]types.EnrichedInterval, 0, len(d.intervals))
	missing := 0
	for _, e := range d.intervals {
		t := e.Sample.Time
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !to.IsZero() && !t.Before(to) {
			continue
		}
		if !e.HasPrice() {
			missing++
		}
		filtered = append(filtered, e)
	}

	return &Dataset{
		intervals:     filtered,
		interval:      d.interval,
		missingPrices: missing,
	}
}

// Totals reduces the whole dataset to a single summary with the
// savings-source breakdown and per-kWh cost comparison.
func (d *Dataset) Totals() types.GrandTotal {
	var acc accumulator
	var breakdown types.SavingsBreakdown

	for _, e := range d.intervals {
		acc.add(e)
		if !e.HasPrice() {
			continue
		}
		breakdown.ExportRevenue += e.GridExportKWh * e.SellPriceAdjusted.Value()
		if e.SellPrice.Value() > 0 {
			breakdown.ExportedAtPositiveKWh += e.GridExportKWh
		} else {
			breakdown.ExportedAtFlooredKWh += e.GridExportKWh
		}
	}

	summary := acc.summary(totalPeriod(d))

	breakdown.SelfConsumedKWh = summary.ConsumptionKWh - summary.GridImportKWh
	if summary.AvgPurchasePrice.IsValid() {
		breakdown.SelfConsumptionValue = maybe.Some(breakdown.SelfConsumedKWh * summary.AvgPurchasePrice.Value())
	}

	total := types.GrandTotal{
		PeriodSummary: summary,
		Breakdown:     breakdown,
	}
	if summary.ConsumptionKWh != 0 {
		total.EffectiveCostPerKWh = maybe.Some(summary.ActualCost / summary.ConsumptionKWh)
		total.GridOnlyCostPerKWh = maybe.Some(summary.HypotheticalCost / summary.ConsumptionKWh)
	}

	return total
}
