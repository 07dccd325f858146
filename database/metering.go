package database

import (
	"context"
	"fmt"
	"time"

	"github.com/angas/solarsavings-go/types"
)

// ReplaceMeteringSamples swaps the cached sample set for a fresh import.
// The import is all-or-nothing; a half-written cache would be worse than
// no cache.
func (d *Database) ReplaceMeteringSamples(ctx context.Context, samples []types.MeteringSample) error {
	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting metering import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM metering_sample`); err != nil {
		return fmt.Errorf("clearing metering samples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metering_sample (
			time, consumption, grid_import, grid_export, pv, battery_charge, battery_discharge)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing metering insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		_, err := stmt.ExecContext(ctx,
			s.Time.UTC().Format(time.RFC3339),
			s.Consumption,
			s.GridImport,
			s.GridExport,
			s.Generation,
			s.BatteryCharge,
			s.BatteryDischarge)
		if err != nil {
			return fmt.Errorf("inserting metering sample at %s: %w", s.Time.Format(time.RFC3339), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing metering import: %w", err)
	}

	return nil
}

// GetMeteringSamples returns the cached sample set ordered by time.
func (d *Database) GetMeteringSamples(ctx context.Context) ([]types.MeteringSample, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT time, consumption, grid_import, grid_export, pv, battery_charge, battery_discharge
		FROM metering_sample
		ORDER BY time ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetching metering samples: %w", err)
	}
	defer rows.Close()

	var samples []types.MeteringSample
	for rows.Next() {
		var s types.MeteringSample
		var ts string
		err := rows.Scan(&ts, &s.Consumption, &s.GridImport, &s.GridExport, &s.Generation, &s.BatteryCharge, &s.BatteryDischarge)
		if err != nil {
			return nil, fmt.Errorf("scanning metering sample row: %w", err)
		}
		if s.Time, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("parsing metering sample time %q: %w", ts, err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading metering sample rows: %w", err)
	}

	return samples, nil
}

func (d *Database) CountMeteringSamples(ctx context.Context) (int, error) {
	var n int
	err := d.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM metering_sample`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting metering samples: %w", err)
	}
	return n, nil
}
