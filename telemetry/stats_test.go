package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	// Unsorted input must not be reordered.
	values := []float64{250, 10, 60, 200, 100}
	d := ComputeDistribution(values)

	if math.Abs(d.Mean-124) > 1e-9 {
		t.Errorf("mean = %v, want 124", d.Mean)
	}
	// Population std of {10, 60, 100, 200, 250}.
	if math.Abs(d.Std-88.6792) > 1e-3 {
		t.Errorf("std = %v, want ~88.679", d.Std)
	}
	if d.P50 != 100 {
		t.Errorf("p50 = %v, want 100", d.P50)
	}
	if math.Abs(d.P10-30) > 1e-9 || math.Abs(d.P90-230) > 1e-9 {
		t.Errorf("p10/p90 = %v/%v, want 30/230", d.P10, d.P90)
	}
	if values[0] != 250 {
		t.Error("input slice was sorted in place")
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	if d := ComputeDistribution(nil); d != (Distribution{}) {
		t.Errorf("empty sample = %+v, want zeros", d)
	}
}
