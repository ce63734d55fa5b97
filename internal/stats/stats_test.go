package stats

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean of empty slice = %f, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %f, want 4", got)
	}
}

func TestStdDevGuards(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev of empty slice = %f, want 0", got)
	}
	if got := StdDev([]float64{5}); got != 0 {
		t.Errorf("StdDev of single sample = %f, want 0", got)
	}
}

func TestStdDev(t *testing.T) {
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("StdDev = %f, want 2", got)
	}
}

func TestDownsideDeviation(t *testing.T) {
	// Mean is 0; only -10 and -20 sit below it.
	got := DownsideDeviation([]float64{10, 20, -10, -20, 0})
	want := math.Sqrt((100.0 + 400.0) / 2.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DownsideDeviation = %f, want %f", got, want)
	}

	if got := DownsideDeviation([]float64{3, 3, 3}); got != 0 {
		t.Errorf("DownsideDeviation of flat series = %f, want 0", got)
	}
}

func TestCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	if got := Correlation(xs, ys); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Correlation of linear series = %f, want 1", got)
	}

	inv := []float64{10, 8, 6, 4, 2}
	if got := Correlation(xs, inv); math.Abs(got+1.0) > 1e-9 {
		t.Errorf("Correlation of inverse series = %f, want -1", got)
	}

	if got := Correlation(xs, []float64{1, 2}); got != 0 {
		t.Errorf("Correlation with length mismatch = %f, want 0", got)
	}
	if got := Correlation([]float64{1, 1, 1}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("Correlation with zero variance = %f, want 0", got)
	}
}
