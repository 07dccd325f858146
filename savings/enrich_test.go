package savings

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/angas/solarsavings-go/types"
)

func sampleAt(at time.Time, consumption, gridImport, gridExport, pv float64) types.MeteringSample {
	return types.MeteringSample{
		Time:        at,
		Consumption: consumption,
		GridImport:  gridImport,
		GridExport:  gridExport,
		Generation:  pv,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnrichSelfConsumption(t *testing.T) {
	// 600 native units over ten minutes is 0.1 kWh. The household consumed
	// 0.1 kWh, imported nothing, so the grid-only bill of 0.2 is saved in
	// full... except nothing was exported, so savings equal the avoided
	// purchase minus actual cost of zero.
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{sampleAt(noon.Add(10*time.Minute), 600, 0, 0, 600)}
	bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := d.Intervals()[0]
	if !almostEqual(e.ConsumptionKWh, 0.1) {
		t.Errorf("expected 0.1 kWh consumption, got %v", e.ConsumptionKWh)
	}
	if !e.HasPrice() {
		t.Fatal("expected a price hit")
	}
	if !almostEqual(e.ActualCost.Value(), 0) {
		t.Errorf("expected actual cost 0, got %v", e.ActualCost.Value())
	}
	if !almostEqual(e.HypotheticalCost.Value(), 0.2) {
		t.Errorf("expected hypothetical cost 0.2, got %v", e.HypotheticalCost.Value())
	}
	if !almostEqual(e.Savings.Value(), 0.2) {
		t.Errorf("expected savings 0.2, got %v", e.Savings.Value())
	}
}

func TestEnrichImportOnly(t *testing.T) {
	// All consumption imported: actual equals hypothetical, savings zero.
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{sampleAt(noon, 600, 600, 0, 0)}
	bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := d.Intervals()[0]
	if !almostEqual(e.ActualCost.Value(), 0.2) {
		t.Errorf("expected actual cost 0.2, got %v", e.ActualCost.Value())
	}
	if !almostEqual(e.Savings.Value(), 0) {
		t.Errorf("expected savings 0, got %v", e.Savings.Value())
	}
}

func TestEnrichNegativeSellPriceFloor(t *testing.T) {
	// Exporting 0.1 kWh at sell price -0.5 earns nothing rather than
	// costing 0.05.
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{sampleAt(noon, 0, 0, 600, 600)}
	bands := []types.PriceBand{hourBand(noon, 2.0, -0.5)}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := d.Intervals()[0]
	if !almostEqual(e.SellPrice.Value(), -0.5) {
		t.Errorf("expected raw sell price -0.5, got %v", e.SellPrice.Value())
	}
	if !almostEqual(e.SellPriceAdjusted.Value(), 0) {
		t.Errorf("expected adjusted sell price 0, got %v", e.SellPriceAdjusted.Value())
	}
	if !almostEqual(e.ActualCost.Value(), 0) {
		t.Errorf("expected actual cost 0, got %v", e.ActualCost.Value())
	}
}

func TestEnrichCostIdentity(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{
		sampleAt(noon, 840, 120, 300, 1020),
		sampleAt(noon.Add(10*time.Minute), 500, 500, 0, 0),
		sampleAt(noon.Add(20*time.Minute), 0, 0, 600, 600),
	}
	bands := []types.PriceBand{hourBand(noon, 2.37, 0.83)}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range d.Intervals() {
		want := e.HypotheticalCost.Value() - e.ActualCost.Value()
		if !almostEqual(e.Savings.Value(), want) {
			t.Errorf("interval %v: savings %v does not equal hypothetical-actual %v",
				e.Sample.Time, e.Savings.Value(), want)
		}
	}
}

func TestEnrichMissingPrice(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{
		sampleAt(noon, 600, 300, 0, 300),
		sampleAt(noon.Add(2*time.Hour), 600, 300, 0, 300), // no band here
	}
	bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.MissingPriceCount() != 1 {
		t.Errorf("expected 1 missing price, got %d", d.MissingPriceCount())
	}

	gap := d.Intervals()[1]
	if gap.HasPrice() {
		t.Fatal("expected absent price fields")
	}
	// Energy normalization still happens for unpriced intervals.
	if !almostEqual(gap.ConsumptionKWh, 0.1) {
		t.Errorf("expected 0.1 kWh consumption, got %v", gap.ConsumptionKWh)
	}
	if gap.ActualCost.IsValid() || gap.Savings.IsValid() {
		t.Error("expected cost fields to stay absent, not zero")
	}
}

func TestEnrichCustomInterval(t *testing.T) {
	// At a 15-minute interval the divisor is 4000, so 600 native units
	// are 0.15 kWh.
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{sampleAt(noon, 600, 0, 0, 600)}
	bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

	d, err := Enrich(samples, bands, Options{SampleInterval: 15 * time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Intervals()[0].ConsumptionKWh; !almostEqual(got, 0.15) {
		t.Errorf("expected 0.15 kWh, got %v", got)
	}
	if d.SampleInterval() != 15*time.Minute {
		t.Errorf("expected 15m interval, got %v", d.SampleInterval())
	}
}

func TestEnrichEmptyInputs(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{sampleAt(noon, 600, 0, 0, 600)}
	bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

	if _, err := Enrich(nil, bands, Options{}); !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
	if _, err := Enrich(samples, nil, Options{}); !errors.Is(err, ErrNoPriceBands) {
		t.Errorf("expected ErrNoPriceBands, got %v", err)
	}
}
