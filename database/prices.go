package database

import (
	"context"
	"fmt"
	"time"

	"github.com/angas/solarsavings-go/types"
)

// ReplacePriceBands swaps the cached price set for a fresh import.
func (d *Database) ReplacePriceBands(ctx context.Context, bands []types.PriceBand) error {
	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting price import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_band`); err != nil {
		return fmt.Errorf("clearing price bands: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO price_band (valid_from, valid_to, purchase_price, sell_price)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing price insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bands {
		_, err := stmt.ExecContext(ctx,
			b.ValidFrom.UTC().Format(time.RFC3339),
			b.ValidTo.UTC().Format(time.RFC3339),
			b.PurchasePrice,
			b.SellPrice)
		if err != nil {
			return fmt.Errorf("inserting price band from %s: %w", b.ValidFrom.Format(time.RFC3339), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing price import: %w", err)
	}

	return nil
}

// GetPriceBands returns the cached price bands ordered by valid_from.
func (d *Database) GetPriceBands(ctx context.Context) ([]types.PriceBand, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT valid_from, valid_to, purchase_price, sell_price
		FROM price_band
		ORDER BY valid_from ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetching price bands: %w", err)
	}
	defer rows.Close()

	var bands []types.PriceBand
	for rows.Next() {
		var b types.PriceBand
		var from, to string
		if err := rows.Scan(&from, &to, &b.PurchasePrice, &b.SellPrice); err != nil {
			return nil, fmt.Errorf("scanning price band row: %w", err)
		}
		if b.ValidFrom, err = time.Parse(time.RFC3339, from); err != nil {
			return nil, fmt.Errorf("parsing valid_from %q: %w", from, err)
		}
		if b.ValidTo, err = time.Parse(time.RFC3339, to); err != nil {
			return nil, fmt.Errorf("parsing valid_to %q: %w", to, err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading price band rows: %w", err)
	}

	return bands, nil
}

func (d *Database) CountPriceBands(ctx context.Context) (int, error) {
	var n int
	err := d.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM price_band`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting price bands: %w", err)
	}
	return n, nil
}
