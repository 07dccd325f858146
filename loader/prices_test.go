package loader

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/angas/solarsavings-go/types"
)

const pricesHeader = "valid_from,valid_to,purchase_price,sell_price\n"

func TestReadPriceBands(t *testing.T) {
	csv := pricesHeader +
		"2024-03-15 13:00:00,2024-03-15 14:00:00,2.1,-0.3\n" +
		"2024-03-15 12:00:00,2024-03-15 13:00:00,2.5,1.1\n"

	bands, err := ReadPriceBands(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bands) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(bands))
	}

	first := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	if !bands[0].ValidFrom.Equal(first) {
		t.Errorf("expected first band from %v, got %v", first, bands[0].ValidFrom)
	}
	if bands[0].PurchasePrice != 2.5 || bands[0].SellPrice != 1.1 {
		t.Errorf("unexpected first band prices: %+v", bands[0])
	}

	// Negative sell prices are legal input, the floor is applied later.
	if bands[1].SellPrice != -0.3 {
		t.Errorf("expected sell price -0.3, got %v", bands[1].SellPrice)
	}
}

func TestPriceBandCovers(t *testing.T) {
	band := types.PriceBand{
		ValidFrom:     time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		ValidTo:       time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC),
		PurchasePrice: 2.5,
		SellPrice:     1.1,
	}

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{name: "start is covered", at: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), expected: true},
		{name: "middle is covered", at: time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC), expected: true},
		{name: "end is excluded", at: time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC), expected: false},
		{name: "before start is excluded", at: time.Date(2024, 3, 15, 11, 59, 0, 0, time.UTC), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := band.Covers(tt.at); got != tt.expected {
				t.Errorf("Covers(%v) expected %v, got %v", tt.at, tt.expected, got)
			}
		})
	}
}

func TestReadPriceBandsErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "duplicate valid_from",
			csv: pricesHeader +
				"2024-03-15 12:00:00,2024-03-15 13:00:00,2.5,1.1\n" +
				"2024-03-15 12:00:00,2024-03-15 14:00:00,2.1,1.0\n",
		},
		{
			name: "inverted validity window",
			csv:  pricesHeader + "2024-03-15 13:00:00,2024-03-15 12:00:00,2.5,1.1\n",
		},
		{
			name: "zero length validity window",
			csv:  pricesHeader + "2024-03-15 12:00:00,2024-03-15 12:00:00,2.5,1.1\n",
		},
		{
			name: "non numeric price",
			csv:  pricesHeader + "2024-03-15 12:00:00,2024-03-15 13:00:00,cheap,1.1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPriceBands(strings.NewReader(tt.csv))
			if err == nil {
				t.Fatal("expected an error")
			}
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("expected a RowError, got %T: %v", err, err)
			}
		})
	}
}

func TestReadPriceBandsEmpty(t *testing.T) {
	_, err := ReadPriceBands(strings.NewReader(pricesHeader))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}
