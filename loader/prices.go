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

var priceColumns = []string{
	"valid_from",
	"valid_to",
	"purchase_price",
	"sell_price",
}

// ReadPriceBands parses a price CSV export. Bands are sorted by ValidFrom.
// Prices may be negative; an inverted validity window is a hard error.
func ReadPriceBands(r io.Reader) ([]types.PriceBand, error) {
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
	if err := requireColumns(idx, priceColumns...); err != nil {
		return nil, err
	}

	var bands []types.PriceBand
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

		band, err := parsePriceRecord(record, idx)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		if prev, ok := seen[band.ValidFrom]; ok {
			return nil, &RowError{Line: line,
				Err: fmt.Errorf("duplicate valid_from %s, first seen on line %d", band.ValidFrom.Format(time.RFC3339), prev)}
		}
		seen[band.ValidFrom] = line

		bands = append(bands, band)
	}

	if len(bands) == 0 {
		return nil, ErrEmptyDataset
	}

	slices.SortFunc(bands, func(a, b types.PriceBand) int {
		return a.ValidFrom.Compare(b.ValidFrom)
	})

	return bands, nil
}

// LoadPriceBands is ReadPriceBands over a file path.
func LoadPriceBands(path string) ([]types.PriceBand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening prices file: %w", err)
	}
	defer f.Close()

	bands, err := ReadPriceBands(f)
	if err != nil {
		return nil, fmt.Errorf("loading prices from %s: %w", path, err)
	}
	return bands, nil
}

func parsePriceRecord(record []string, idx map[string]int) (types.PriceBand, error) {
	var band types.PriceBand

	raw, err := field(record, idx, "valid_from")
	if err != nil {
		return band, err
	}
	if band.ValidFrom, err = parseTime(raw); err != nil {
		return band, err
	}

	raw, err = field(record, idx, "valid_to")
	if err != nil {
		return band, err
	}
	if band.ValidTo, err = parseTime(raw); err != nil {
		return band, err
	}

	if !band.ValidFrom.Before(band.ValidTo) {
		return band, fmt.Errorf("valid_from %s is not before valid_to %s",
			band.ValidFrom.Format(time.RFC3339), band.ValidTo.Format(time.RFC3339))
	}

	raw, err = field(record, idx, "purchase_price")
	if err != nil {
		return band, err
	}
	if band.PurchasePrice, err = parseFloat(raw, "purchase_price"); err != nil {
		return band, err
	}

	raw, err = field(record, idx, "sell_price")
	if err != nil {
		return band, err
	}
	if band.SellPrice, err = parseFloat(raw, "sell_price"); err != nil {
		return band, err
	}

	return band, nil
}
