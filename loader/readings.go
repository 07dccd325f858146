package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/angas/solarsavings-go/types"
)

var readingColumns = []string{
	"time",
	"consumption",
	"grid_import",
	"grid_export",
	"pv",
	"battery_charge",
	"battery_discharge",
}

// ReadMeteringSamples parses an inverter CSV export. The result is sorted
// by timestamp. Duplicate timestamps are a loader-level error, not
// something the pipeline papers over.
func ReadMeteringSamples(r io.Reader) ([]types.MeteringSample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	idx := headerIndex(header)
	if err := requireColumns(idx, readingColumns...); err != nil {
		return nil, err
	}

	var samples []types.MeteringSample
	seen := make(map[time.Time]int)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		sample, err := parseReadingRecord(record, idx)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		if prev, ok := seen[sample.Time]; ok {
			return nil, &RowError{Line: line,
				Err: fmt.Errorf("duplicate timestamp %s, first seen on line %d", sample.Time.Format(time.RFC3339), prev)}
		}
		seen[sample.Time] = line

		samples = append(samples, sample)
	}

	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}

	slices.SortFunc(samples, func(a, b types.MeteringSample) int {
		return a.Time.Compare(b.Time)
	})

	return samples, nil
}

// LoadMeteringSamples is ReadMeteringSamples over a file path.
func LoadMeteringSamples(path string) ([]types.MeteringSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening readings file: %w", err)
	}
	defer f.Close()

	samples, err := ReadMeteringSamples(f)
	if err != nil {
		return nil, fmt.Errorf("loading readings from %s: %w", path, err)
	}
	return samples, nil
}

func parseReadingRecord(record []string, idx map[string]int) (types.MeteringSample, error) {
	var sample types.MeteringSample

	raw, err := field(record, idx, "time")
	if err != nil {
		return sample, err
	}
	if sample.Time, err = parseTime(raw); err != nil {
		return sample, err
	}

	energies := []struct {
		column string
		dest   *float64
	}{
		{"consumption", &sample.Consumption},
		{"grid_import", &sample.GridImport},
		{"grid_export", &sample.GridExport},
		{"pv", &sample.Generation},
		{"battery_charge", &sample.BatteryCharge},
		{"battery_discharge", &sample.BatteryDischarge},
	}

	for _, e := range energies {
		raw, err := field(record, idx, e.column)
		if err != nil {
			return sample, err
		}
		v, err := parseFloat(raw, e.column)
		if err != nil {
			return sample, err
		}
		if v < 0 {
			return sample, fmt.Errorf("column %s: negative energy value %v", e.column, v)
		}
		*e.dest = v
	}

	return sample, nil
}
