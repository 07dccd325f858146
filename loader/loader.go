// Package loader reads the two source record sets (metering samples and
// price bands) from CSV exports. Loading is strict: unparseable rows,
// duplicate timestamps and empty files abort with a reported cause so the
// pipeline never sees malformed data.
package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrEmptyDataset = errors.New("no data rows after header")

// RowError is a hard, per-line loading failure. Line is 1-based and counts
// the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

func parseFloat(s, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: non-numeric value %q", column, s)
	}
	return v, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func requireColumns(idx map[string]int, columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func field(record []string, idx map[string]int, column string) (string, error) {
	i := idx[column]
	if i >= len(record) {
		return "", fmt.Errorf("column %s: missing field", column)
	}
	return record[i], nil
}
