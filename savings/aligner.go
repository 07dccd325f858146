package savings

import (
	"time"

	"github.com/angas/solarsavings-go/periods"
	"github.com/angas/solarsavings-go/types"
)

// DefaultPriceGranularity matches the hourly spot-price bands the data
// exports carry.
const DefaultPriceGranularity = time.Hour

// PriceIndex maps granularity-floored timestamps to price bands. Bands are
// contiguous and aligned to period boundaries, so the join is an exact-key
// lookup on the floored sample time instead of a range scan. With ~40k
// samples per run a linear scan per sample would be quadratic.
type PriceIndex struct {
	granularity time.Duration
	bands       map[time.Time]types.PriceBand
}

// NewPriceIndex builds the lookup table. A band spanning more than one
// granularity bucket is indexed under every bucket it covers, so the index
// stays correct when band length and granularity differ. A non-positive
// granularity falls back to hourly.
func NewPriceIndex(bands []types.PriceBand, granularity time.Duration) *PriceIndex {
	if granularity <= 0 {
		granularity = DefaultPriceGranularity
	}

	ix := &PriceIndex{
		granularity: granularity,
		bands:       make(map[time.Time]types.PriceBand, len(bands)),
	}

	for _, band := range bands {
		for key := periods.Floor(band.ValidFrom, granularity); key.Before(band.ValidTo); key = key.Add(granularity) {
			if _, taken := ix.bands[key]; taken {
				// Overlapping bands violate the input invariant; the
				// earlier band keeps the bucket.
				continue
			}
			ix.bands[key] = band
		}
	}

	return ix
}

// Lookup returns the band covering t, or false when no band does. A miss
// is not an error: the caller records the interval with absent prices.
func (ix *PriceIndex) Lookup(t time.Time) (types.PriceBand, bool) {
	band, ok := ix.bands[periods.Floor(t, ix.granularity)]
	if !ok {
		return types.PriceBand{}, false
	}
	return band, true
}

func (ix *PriceIndex) Granularity() time.Duration {
	return ix.granularity
}

func (ix *PriceIndex) Len() int {
	return len(ix.bands)
}
