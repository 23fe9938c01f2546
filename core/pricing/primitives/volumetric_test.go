package primitives

import (
	"testing"

	"landed-cost/core/types"
)

func TestVolume(t *testing.T) {
	tests := []struct {
		name                  string
		length, width, height float64
		expected              float64
	}{
		{"one cubic meter", 1000, 1000, 1000, 1},
		{"shoebox", 400, 300, 200, product(0.4, 0.3, 0.2)},
		{"sub-millimeter", 0.5, 1000, 1000, 0.0005},
		{"zero length", 0, 100, 100, 0},
		{"zero width", 100, 0, 100, 0},
		{"zero height", 100, 100, 0, 0},
		{"negative side", -100, 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Volume(tt.length, tt.width, tt.height)
			if got != tt.expected {
				t.Errorf("Expected volume %v, got %v", tt.expected, got)
			}
		})
	}
}

// product multiplies at run time so the expectation follows float64 rounding
func product(a, b, c float64) float64 {
	return a * b * c
}

func TestVolumeOf(t *testing.T) {
	d := types.Dimensions{Length: 500, Width: 400, Height: 300}
	if got, want := VolumeOf(d), Volume(500, 400, 300); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestBillableWeight(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		volume   float64
		factor   float64
		expected float64
	}{
		{"actual weight wins", 50, 0.1, 200, 50},
		{"volumetric weight wins", 10, 0.5, 200, 100},
		{"equal weights", 20, 0.1, 200, 20},
		{"default factor when unset", 1, 1, 0, 200},
		{"default factor when negative", 1, 1, -5, 200},
		{"custom factor", 1, 1, 167, 167},
		{"zero volume", 12, 0, 200, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BillableWeight(tt.weight, tt.volume, tt.factor)
			if got != tt.expected {
				t.Errorf("Expected billable weight %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBillableWeightMonotonic(t *testing.T) {
	prev := 0.0
	for _, w := range []float64{0, 1, 5, 30, 31, 300, 1000, 5000} {
		got := BillableWeight(w, 0.2, 200)
		if got < prev {
			t.Fatalf("billable weight decreased at weight %v: %v < %v", w, got, prev)
		}
		prev = got
	}

	prev = 0.0
	for _, v := range []float64{0, 0.01, 0.1, 0.15, 1, 10} {
		got := BillableWeight(25, v, 200)
		if got < prev {
			t.Fatalf("billable weight decreased at volume %v: %v < %v", v, got, prev)
		}
		prev = got
	}
}
