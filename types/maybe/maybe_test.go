package maybe

import (
	"encoding/json"
	"testing"
)

func TestSomeAndNone(t *testing.T) {
	some := Some(1.5)
	if !some.IsValid() || some.Value() != 1.5 {
		t.Errorf("Some(1.5) expected valid 1.5, got valid=%v value=%v", some.IsValid(), some.Value())
	}

	none := None[float64]()
	if none.IsValid() {
		t.Error("None() expected invalid")
	}
	if v := none.ValueOrDefault(42); v != 42 {
		t.Errorf("ValueOrDefault(42) expected 42, got %v", v)
	}
}

func TestMarshalJSON(t *testing.T) {
	type payload struct {
		Present Maybe[float64] `json:"present"`
		Absent  Maybe[float64] `json:"absent"`
	}

	b, err := json.Marshal(payload{Present: Some(0.25), Absent: None[float64]()})
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	expected := `{"present":0.25,"absent":null}`
	if string(b) != expected {
		t.Errorf("expected %s, got %s", expected, string(b))
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    Maybe[float64]
		decimals int
		expected string
	}{
		{name: "present two decimals", input: Some(1.2345), decimals: 2, expected: "1.23"},
		{name: "present zero decimals", input: Some(1.9), decimals: 0, expected: "2"},
		{name: "absent is N/A", input: None[float64](), decimals: 2, expected: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloat(tt.input, tt.decimals); got != tt.expected {
				t.Errorf("FormatFloat expected %q, got %q", tt.expected, got)
			}
		})
	}
}
