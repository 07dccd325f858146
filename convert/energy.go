package convert

import (
	"time"
)

// KWhDivisor returns the divisor that turns a native accumulated value
// (watts accumulated over one metering interval) into kWh. For 10-minute
// intervals this is 6000: 1000 (W to kW) times 6 (intervals per hour).
// Deriving it from the interval keeps the pipeline correct if the meter is
// ever resampled.
func KWhDivisor(interval time.Duration) float64 {
	return 1000.0 * float64(time.Hour) / float64(interval)
}

// IntervalEnergyToKWh converts one native accumulated-energy value to kWh.
func IntervalEnergyToKWh(raw float64, interval time.Duration) float64 {
	return raw / KWhDivisor(interval)
}
