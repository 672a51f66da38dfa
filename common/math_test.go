package common

import (
	"math"
	"testing"
)

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"start", 0, 0},
		{"mid", 0.5, 0.5},
		{"end", 1, 1},
		{"clamped_low", -1, 0},
		{"clamped_high", 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EaseInOutCubic(tc.in); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("EaseInOutCubic(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecayMatchesPerTickAtReferenceRate(t *testing.T) {
	got := Decay(0.96, 1/ReferenceRate)
	if math.Abs(got-0.96) > 1e-12 {
		t.Fatalf("expected 0.96 for one reference tick, got %v", got)
	}
	twice := Decay(0.96, 2/ReferenceRate)
	if math.Abs(twice-0.96*0.96) > 1e-12 {
		t.Fatalf("expected 0.9216 for two ticks, got %v", twice)
	}
	if Decay(0.5, 0) != 1 {
		t.Fatal("zero dt must not decay")
	}
}

func TestTurnToward(t *testing.T) {
	tests := []struct {
		name          string
		from, to, max float64
		want          float64
	}{
		{"within_step", 0, 0.1, 0.15, 0.1},
		{"clamped", 0, 1, 0.15, 0.15},
		{"clamped_negative", 0, -1, 0.15, -0.15},
		{"wraps_short_way", 3, -3, 0.5, 3 + (2*math.Pi - 6)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TurnToward(tc.from, tc.to, tc.max)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("TurnToward(%v,%v,%v) = %v, want %v", tc.from, tc.to, tc.max, got, tc.want)
			}
		})
	}
}
