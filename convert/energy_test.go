package convert

import (
	"math"
	"testing"
	"time"
)

func TestKWhDivisor(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected float64
	}{
		{name: "ten minutes", interval: 10 * time.Minute, expected: 6000},
		{name: "five minutes", interval: 5 * time.Minute, expected: 12000},
		{name: "fifteen minutes", interval: 15 * time.Minute, expected: 4000},
		{name: "one hour", interval: time.Hour, expected: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := KWhDivisor(tt.interval); d != tt.expected {
				t.Errorf("KWhDivisor(%v) expected %v, got %v", tt.interval, tt.expected, d)
			}
		})
	}
}

func TestIntervalEnergyToKWh(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		interval time.Duration
		expected float64
	}{
		{name: "600 over ten minutes is 0.1 kWh", raw: 600, interval: 10 * time.Minute, expected: 0.1},
		{name: "zero stays zero", raw: 0, interval: 10 * time.Minute, expected: 0},
		{name: "6000 over ten minutes is 1 kWh", raw: 6000, interval: 10 * time.Minute, expected: 1},
		{name: "600 over five minutes is 0.05 kWh", raw: 600, interval: 5 * time.Minute, expected: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalEnergyToKWh(tt.raw, tt.interval)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("IntervalEnergyToKWh(%v, %v) expected %v, got %v", tt.raw, tt.interval, tt.expected, got)
			}
		})
	}
}
