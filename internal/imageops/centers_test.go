package imageops

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFindCentersTracksBrightestRow(t *testing.T) {
	// Bright reflector on row 12 in every column.
	img := uniformImage(30, 16, 0.3)
	for j := 0; j < 16; j++ {
		img.Set(12, j, 1.0)
	}

	centers, err := FindCenters(img, DefaultCenterKernel)
	if err != nil {
		t.Fatalf("FindCenters: %v", err)
	}
	for j, c := range centers {
		if c != 12 {
			t.Errorf("column %d: center %d, want 12", j, c)
		}
	}
}

func TestFindCentersRejectsSpike(t *testing.T) {
	// One column has a spurious maximum far from the reflector; the
	// median filter must pull it back to the neighborhood.
	img := uniformImage(30, 16, 0.3)
	for j := 0; j < 16; j++ {
		img.Set(12, j, 1.0)
	}
	img.Set(2, 8, 2.0)

	centers, err := FindCenters(img, DefaultCenterKernel)
	if err != nil {
		t.Fatalf("FindCenters: %v", err)
	}
	if centers[8] != 12 {
		t.Errorf("spike column center %d, want smoothed 12", centers[8])
	}
}

func TestFindCentersBadKernel(t *testing.T) {
	img := uniformImage(4, 4, 0.5)
	if _, err := FindCenters(img, 4); err == nil {
		t.Fatal("even kernel size accepted")
	}
}

func TestFindEdgeDirectionality(t *testing.T) {
	// Foreground blocks above and below the centers; upper picks must
	// stay at or above the center, lower picks at or below.
	mask := mat.NewDense(40, 10, nil)
	for j := 0; j < 10; j++ {
		mask.Set(10+j%3, j, 1) // above
		mask.Set(30-j%3, j, 1) // below
	}
	centers := make([]int, 10)
	for j := range centers {
		centers[j] = 20
	}

	upper, err := FindEdge(mask, centers, SurfaceUpper)
	if err != nil {
		t.Fatalf("FindEdge upper: %v", err)
	}
	lower, err := FindEdge(mask, centers, SurfaceLower)
	if err != nil {
		t.Fatalf("FindEdge lower: %v", err)
	}
	for j := 0; j < 10; j++ {
		if math.IsNaN(upper[j]) || upper[j] > float64(centers[j]) {
			t.Errorf("column %d: upper edge %v beyond center %d", j, upper[j], centers[j])
		}
		if upper[j] != float64(10+j%3) {
			t.Errorf("column %d: upper edge %v, want %d", j, upper[j], 10+j%3)
		}
		if math.IsNaN(lower[j]) || lower[j] < float64(centers[j]) {
			t.Errorf("column %d: lower edge %v above center %d", j, lower[j], centers[j])
		}
		if lower[j] != float64(30-j%3) {
			t.Errorf("column %d: lower edge %v, want %d", j, lower[j], 30-j%3)
		}
	}
}

func TestFindEdgeNoPixelIsNaN(t *testing.T) {
	mask := mat.NewDense(20, 4, nil)
	mask.Set(5, 0, 1) // only column 0 has anything above center
	centers := []int{10, 10, 10, 10}

	upper, err := FindEdge(mask, centers, SurfaceUpper)
	if err != nil {
		t.Fatalf("FindEdge: %v", err)
	}
	if upper[0] != 5 {
		t.Errorf("column 0: edge %v, want 5", upper[0])
	}
	for j := 1; j < 4; j++ {
		if !math.IsNaN(upper[j]) {
			t.Errorf("column %d: edge %v, want NaN", j, upper[j])
		}
	}
}

func TestFindEdgeCentersMismatch(t *testing.T) {
	mask := mat.NewDense(10, 5, nil)
	if _, err := FindEdge(mask, []int{1, 2}, SurfaceUpper); err == nil {
		t.Fatal("mismatched centers length accepted")
	}
}
