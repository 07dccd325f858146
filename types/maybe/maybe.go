package maybe

import (
	"encoding/json"
	"fmt"
)

// Maybe is an explicit optional. Absent values (missing prices, undefined
// ratios) stay absent instead of degrading to zero or NaN.
type Maybe[T any] struct {
	value T
	valid bool
}

func Some[T any](value T) Maybe[T] {
	return Maybe[T]{
		value: value,
		valid: true,
	}
}

func None[T any]() Maybe[T] {
	return Maybe[T]{
		valid: false,
	}
}

func SqlNull[T any](value T, valid bool) Maybe[T] {
	return Maybe[T]{
		value: value,
		valid: valid,
	}
}

func (m Maybe[T]) IsValid() bool {
	return m.valid
}

func (m Maybe[T]) Value() T {
	return m.value
}

func (m Maybe[T]) ValueOrDefault(defaultValue T) T {
	if m.valid {
		return m.value
	}
	return defaultValue
}

// MarshalJSON emits null for absent values so chart payloads get gaps,
// not zeroes.
func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// FormatFloat renders an absent value as "N/A", which is what templates
// and report writers want for undefined ratios.
func FormatFloat(m Maybe[float64], decimals int) string {
	if !m.IsValid() {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, m.Value())
}
