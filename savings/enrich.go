// Package savings is the merge-and-derivation core shared by the dashboard
// server and the report generator. It aligns metering samples with price
// bands, normalizes units, derives per-interval costs and reduces them to
// period summaries.
package savings

import (
	"errors"
	"time"

	"github.com/angas/solarsavings-go/convert"
	"github.com/angas/solarsavings-go/types"
	"github.com/angas/solarsavings-go/types/maybe"
)

// DefaultSampleInterval is the metering interval of the inverter exports.
const DefaultSampleInterval = 10 * time.Minute

var (
	ErrNoSamples    = errors.New("no metering samples to enrich")
	ErrNoPriceBands = errors.New("no price bands to enrich with")
)

// Options parameterize the pipeline instead of baking in the 10-minute /
// hourly assumptions the exports happen to use today.
type Options struct {
	SampleInterval   time.Duration
	PriceGranularity time.Duration
}

func (o Options) sampleInterval() time.Duration {
	if o.SampleInterval <= 0 {
		return DefaultSampleInterval
	}
	return o.SampleInterval
}

// Enrich runs alignment, unit normalization and cost derivation over the
// whole input once. The result is an immutable Dataset; date filtering and
// re-aggregation happen on the Dataset without re-running this.
func Enrich(samples []types.MeteringSample, bands []types.PriceBand, opts Options) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if len(bands) == 0 {
		return nil, ErrNoPriceBands
	}

	interval := opts.sampleInterval()
	index := NewPriceIndex(bands, opts.PriceGranularity)

	intervals := make([]types.EnrichedInterval, len(samples))
	missing := 0
	for i, sample := range samples {
		enriched := enrichSample(sample, index, interval)
		if !enriched.HasPrice() {
			missing++
		}
		intervals[i] = enriched
	}

	return &Dataset{
		intervals:     intervals,
		interval:      interval,
		missingPrices: missing,
	}, nil
}

func enrichSample(sample types.MeteringSample, index *PriceIndex, interval time.Duration) types.EnrichedInterval {
	e := types.EnrichedInterval{
		Sample:              sample,
		ConsumptionKWh:      convert.IntervalEnergyToKWh(sample.Consumption, interval),
		GridImportKWh:       convert.IntervalEnergyToKWh(sample.GridImport, interval),
		GridExportKWh:       convert.IntervalEnergyToKWh(sample.GridExport, interval),
		GenerationKWh:       convert.IntervalEnergyToKWh(sample.Generation, interval),
		BatteryChargeKWh:    convert.IntervalEnergyToKWh(sample.BatteryCharge, interval),
		BatteryDischargeKWh: convert.IntervalEnergyToKWh(sample.BatteryDischarge, interval),
	}

	band, ok := index.Lookup(sample.Time)
	if !ok {
		// No covering band: cost fields stay absent. Zeroing them here
		// would understate cost exposure for the gap.
		return e
	}

	// Export revenue is floored at zero: exporting during negative-price
	// periods earns nothing, it does not cost anything either.
	sellAdjusted := max(band.SellPrice, 0)

	actual := e.GridImportKWh*band.PurchasePrice - e.GridExportKWh*sellAdjusted
	hypothetical := e.ConsumptionKWh * band.PurchasePrice

	e.PurchasePrice = maybe.Some(band.PurchasePrice)
	e.SellPrice = maybe.Some(band.SellPrice)
	e.SellPriceAdjusted = maybe.Some(sellAdjusted)
	e.ActualCost = maybe.Some(actual)
	e.HypotheticalCost = maybe.Some(hypothetical)
	e.Savings = maybe.Some(hypothetical - actual)

	return e
}
