package periods

import (
	"fmt"
	"time"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// Period is one aggregation bucket. Start is the authoritative sort key,
// Label is only for display. Sorting by Label would depend on the label
// format happening to be lexically chronological.
type Period struct {
	Label string
	Start time.Time
}

func (p Period) Compare(other Period) int {
	return p.Start.Compare(other.Start)
}

func (p Period) IsZero() bool {
	return p.Label == "" && p.Start.IsZero()
}

func (p Period) String() string {
	return p.Label
}

// A Grouper maps an interval timestamp to its aggregation period.
type Grouper func(t time.Time) Period

func ByMonth(t time.Time) Period {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Label: start.Format(monthLayout), Start: start}
}

func ByDay(t time.Time) Period {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Period{Label: start.Format(dayLayout), Start: start}
}

// ByISOWeek buckets by ISO-8601 week, starting on Monday.
func ByISOWeek(t time.Time) Period {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}
	year, week := start.ISOWeek()
	return Period{Label: fmt.Sprintf("%04d-W%02d", year, week), Start: start}
}

// Floor truncates t to the given granularity on the UTC timeline. This is
// the join key between metering samples and price bands.
func Floor(t time.Time, granularity time.Duration) time.Time {
	return t.UTC().Truncate(granularity)
}
