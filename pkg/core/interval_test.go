package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	interval := NewInterval(0, 1)

	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{-0.5, false, false},
		{0, true, false},
		{0.5, true, true},
		{1, true, false},
		{1.5, false, false},
	}

	for _, tt := range tests {
		if got := interval.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%v) = %t, expected %t", tt.x, got, tt.contains)
		}
		if got := interval.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%v) = %t, expected %t", tt.x, got, tt.surrounds)
		}
	}
}

func TestInterval_EmptyIsMergeIdentity(t *testing.T) {
	a := NewInterval(-2, 3)
	merged := MergeIntervals(EmptyInterval, a)
	if merged != a {
		t.Errorf("Expected %v, got %v", a, merged)
	}

	if EmptyInterval.Contains(0) {
		t.Error("Empty interval should not contain anything")
	}
	if EmptyInterval.Size() >= 0 {
		t.Errorf("Empty interval should have negative size, got %v", EmptyInterval.Size())
	}
	if !UniverseInterval.Contains(math.MaxFloat64) {
		t.Error("Universe interval should contain every finite value")
	}
}

func TestInterval_ClampExpandShift(t *testing.T) {
	interval := NewInterval(0, 0.999)
	if got := interval.Clamp(1.5); got != 0.999 {
		t.Errorf("Expected clamp to 0.999, got %v", got)
	}
	if got := interval.Clamp(-1); got != 0 {
		t.Errorf("Expected clamp to 0, got %v", got)
	}

	expanded := NewInterval(1, 1).Expand(0.5)
	if expanded.Min != 0.75 || expanded.Max != 1.25 {
		t.Errorf("Expected [0.75, 1.25], got %v", expanded)
	}

	shifted := NewInterval(1, 2).Shift(3)
	if shifted.Min != 4 || shifted.Max != 5 {
		t.Errorf("Expected [4, 5], got %v", shifted)
	}
}

func TestClamp_Ints(t *testing.T) {
	if got := Clamp(12, 0, 9); got != 9 {
		t.Errorf("Expected 9, got %d", got)
	}
	if got := Clamp(-3, 0, 9); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}
