package savings

import (
	"slices"
	"time"

	"github.com/angas/solarsavings-go/periods"
	"github.com/angas/solarsavings-go/types"
	"github.com/angas/solarsavings-go/types/maybe"
)

// Aggregate groups the dataset's intervals with the given grouper and
// reduces each group to a PeriodSummary. Rows come back ordered by the
// period start timestamp, never by label.
func Aggregate(d *Dataset, group periods.Grouper) []types.PeriodSummary {
	accs := make(map[time.Time]*accumulator)
	keys := make(map[time.Time]periods.Period)

	for _, e := range d.intervals {
		p := group(e.Sample.Time)
		acc, ok := accs[p.Start]
		if !ok {
			acc = &accumulator{}
			accs[p.Start] = acc
			keys[p.Start] = p
		}
		acc.add(e)
	}

	summaries := make([]types.PeriodSummary, 0, len(accs))
	for start, acc := range accs {
		summaries = append(summaries, acc.summary(keys[start]))
	}

	slices.SortFunc(summaries, func(a, b types.PeriodSummary) int {
		return a.Period.Compare(b.Period)
	})

	return summaries
}

// AggregateMonthly is the grouping both entry points use by default.
func AggregateMonthly(d *Dataset) []types.PeriodSummary {
	return Aggregate(d, periods.ByMonth)
}

func totalPeriod(d *Dataset) periods.Period {
	from, _ := d.TimeRange()
	return periods.Period{Label: "total", Start: from.UTC()}
}

type accumulator struct {
	consumptionKWh      float64
	gridImportKWh       float64
	gridExportKWh       float64
	generationKWh       float64
	batteryChargeKWh    float64
	batteryDischargeKWh float64

	actualCost       float64
	hypotheticalCost float64
	savings          float64

	purchasePriceSum float64
	priced           int
	missing          int
	intervals        int
}

func (a *accumulator) add(e types.EnrichedInterval) {
	a.intervals++
	a.consumptionKWh += e.ConsumptionKWh
	a.gridImportKWh += e.GridImportKWh
	a.gridExportKWh += e.GridExportKWh
	a.generationKWh += e.GenerationKWh
	a.batteryChargeKWh += e.BatteryChargeKWh
	a.batteryDischargeKWh += e.BatteryDischargeKWh

	if !e.HasPrice() {
		// Absent costs must not slip into the sums as zero; they are
		// counted and reported instead.
		a.missing++
		return
	}

	a.priced++
	a.purchasePriceSum += e.PurchasePrice.Value()
	a.actualCost += e.ActualCost.Value()
	a.hypotheticalCost += e.HypotheticalCost.Value()
	a.savings += e.Savings.Value()
}

func (a *accumulator) summary(p periods.Period) types.PeriodSummary {
	s := types.PeriodSummary{
		Period:              p,
		ConsumptionKWh:      a.consumptionKWh,
		GridImportKWh:       a.gridImportKWh,
		GridExportKWh:       a.gridExportKWh,
		GenerationKWh:       a.generationKWh,
		BatteryChargeKWh:    a.batteryChargeKWh,
		BatteryDischargeKWh: a.batteryDischargeKWh,
		ActualCost:          a.actualCost,
		HypotheticalCost:    a.hypotheticalCost,
		Savings:             a.savings,
		Intervals:           a.intervals,
		MissingPrices:       a.missing,
	}

	if a.priced > 0 {
		s.AvgPurchasePrice = maybe.Some(a.purchasePriceSum / float64(a.priced))
	}
	if a.consumptionKWh != 0 {
		s.SelfSufficiencyPct = maybe.Some((a.consumptionKWh - a.gridImportKWh) / a.consumptionKWh * 100)
	}
	if a.hypotheticalCost != 0 {
		s.SavingsRatePct = maybe.Some(a.savings / a.hypotheticalCost * 100)
	}

	return s
}
