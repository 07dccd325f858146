package savings

import (
	"math"
	"testing"
	"time"

	"github.com/angas/solarsavings-go/periods"
	"github.com/angas/solarsavings-go/types"
)

// twoMonthDataset covers the end of January and start of February with an
// hourly price band for every sample except one gap in February.
func twoMonthDataset(t *testing.T) *Dataset {
	t.Helper()

	janNoon := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	febNoon := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	samples := []types.MeteringSample{
		sampleAt(janNoon, 600, 300, 0, 300),
		sampleAt(janNoon.Add(10*time.Minute), 600, 0, 300, 900),
		sampleAt(febNoon, 1200, 600, 0, 600),
		sampleAt(febNoon.Add(2*time.Hour), 600, 600, 0, 0), // no band
	}
	bands := []types.PriceBand{
		hourBand(janNoon, 2.0, 1.0),
		hourBand(febNoon, 3.0, 1.5),
	}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected enrich error: %v", err)
	}
	return d
}

func TestAggregateMonthly(t *testing.T) {
	d := twoMonthDataset(t)

	summaries := AggregateMonthly(d)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	jan, feb := summaries[0], summaries[1]
	if jan.Period.Label != "2024-01" || feb.Period.Label != "2024-02" {
		t.Fatalf("unexpected period labels: %q, %q", jan.Period.Label, feb.Period.Label)
	}

	if jan.Intervals != 2 || feb.Intervals != 2 {
		t.Errorf("expected 2 intervals per month, got %d and %d", jan.Intervals, feb.Intervals)
	}
	if jan.MissingPrices != 0 || feb.MissingPrices != 1 {
		t.Errorf("expected missing prices 0 and 1, got %d and %d", jan.MissingPrices, feb.MissingPrices)
	}

	// January: 0.2 kWh consumed, 0.05 imported, 0.05 exported.
	if !almostEqual(jan.ConsumptionKWh, 0.2) {
		t.Errorf("expected 0.2 kWh january consumption, got %v", jan.ConsumptionKWh)
	}
	// actual = 0.05*2.0 - 0.05*1.0 = 0.05, hypothetical = 0.2*2.0 = 0.4
	if !almostEqual(jan.ActualCost, 0.05) || !almostEqual(jan.HypotheticalCost, 0.4) {
		t.Errorf("unexpected january costs: actual %v, hypothetical %v", jan.ActualCost, jan.HypotheticalCost)
	}
	if !almostEqual(jan.Savings, 0.35) {
		t.Errorf("expected january savings 0.35, got %v", jan.Savings)
	}

	// February cost sums cover only the priced interval.
	if !almostEqual(feb.ActualCost, 0.3) || !almostEqual(feb.HypotheticalCost, 0.6) {
		t.Errorf("unexpected february costs: actual %v, hypothetical %v", feb.ActualCost, feb.HypotheticalCost)
	}
}

func TestAggregateAdditivity(t *testing.T) {
	d := twoMonthDataset(t)

	total := d.Totals()
	var sumSavings, sumConsumption float64
	for _, s := range AggregateMonthly(d) {
		sumSavings += s.Savings
		sumConsumption += s.ConsumptionKWh
	}

	if !almostEqual(sumSavings, total.Savings) {
		t.Errorf("monthly savings sum %v does not match total %v", sumSavings, total.Savings)
	}
	if !almostEqual(sumConsumption, total.ConsumptionKWh) {
		t.Errorf("monthly consumption sum %v does not match total %v", sumConsumption, total.ConsumptionKWh)
	}
}

func TestAggregateOrdering(t *testing.T) {
	// Samples over a year boundary, fed in shuffled order. Output must be
	// chronological even though "2023-12" sorts after "2023-02" lexically
	// only by accident; the real trap is relying on input order.
	stamps := []time.Time{
		time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	}

	var samples []types.MeteringSample
	var bands []types.PriceBand
	for _, at := range stamps {
		samples = append(samples, sampleAt(at, 600, 300, 0, 300))
		bands = append(bands, hourBand(at, 2.0, 1.0))
	}

	d, err := Enrich(samples, bands, Options{})
	if err != nil {
		t.Fatalf("unexpected enrich error: %v", err)
	}

	summaries := AggregateMonthly(d)
	expected := []string{"2023-12", "2024-01", "2024-02"}
	if len(summaries) != len(expected) {
		t.Fatalf("expected %d summaries, got %d", len(expected), len(summaries))
	}
	for i, label := range expected {
		if summaries[i].Period.Label != label {
			t.Errorf("position %d: expected %q, got %q", i, label, summaries[i].Period.Label)
		}
	}
}

func TestAggregateByDayAndWeek(t *testing.T) {
	d := twoMonthDataset(t)

	days := Aggregate(d, periods.ByDay)
	if len(days) != 2 {
		t.Errorf("expected 2 day buckets, got %d", len(days))
	}

	weeks := Aggregate(d, periods.ByISOWeek)
	// Jan 31 and Feb 1 2024 fall in the same ISO week.
	if len(weeks) != 1 {
		t.Errorf("expected 1 week bucket, got %d", len(weeks))
	}
}

func TestSummaryRatios(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("zero consumption leaves ratios undefined", func(t *testing.T) {
		samples := []types.MeteringSample{sampleAt(noon, 0, 0, 600, 600)}
		bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

		d, err := Enrich(samples, bands, Options{})
		if err != nil {
			t.Fatalf("unexpected enrich error: %v", err)
		}

		s := AggregateMonthly(d)[0]
		if s.SelfSufficiencyPct.IsValid() {
			t.Error("expected self-sufficiency to be undefined, not zero")
		}
	})

	t.Run("no priced intervals leave price average undefined", func(t *testing.T) {
		samples := []types.MeteringSample{sampleAt(noon.Add(48*time.Hour), 600, 300, 0, 300)}
		bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

		d, err := Enrich(samples, bands, Options{})
		if err != nil {
			t.Fatalf("unexpected enrich error: %v", err)
		}

		s := AggregateMonthly(d)[0]
		if s.AvgPurchasePrice.IsValid() || s.SavingsRatePct.IsValid() {
			t.Error("expected price-derived fields to be undefined")
		}
		if math.Signbit(s.ActualCost) || s.ActualCost != 0 {
			t.Errorf("expected zero cost sum, got %v", s.ActualCost)
		}
	})

	t.Run("self sufficiency from import share", func(t *testing.T) {
		// 0.2 kWh consumed, 0.05 imported: 75% self-sufficient.
		samples := []types.MeteringSample{sampleAt(noon, 1200, 300, 0, 900)}
		bands := []types.PriceBand{hourBand(noon, 2.0, 1.0)}

		d, err := Enrich(samples, bands, Options{})
		if err != nil {
			t.Fatalf("unexpected enrich error: %v", err)
		}

		s := AggregateMonthly(d)[0]
		if !s.SelfSufficiencyPct.IsValid() || !almostEqual(s.SelfSufficiencyPct.Value(), 75) {
			t.Errorf("expected 75%% self-sufficiency, got %+v", s.SelfSufficiencyPct)
		}
	})
}
