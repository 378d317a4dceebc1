package imageops

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// uniformImage builds an r x c matrix filled with v.
func uniformImage(r, c int, v float64) *mat.Dense {
	img := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			img.Set(i, j, v)
		}
	}
	return img
}

func countForeground(mask *mat.Dense) int {
	r, c := mask.Dims()
	n := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if mask.At(i, j) != 0 {
				n++
			}
		}
	}
	return n
}

func TestAutoThresholdSeparatesStripe(t *testing.T) {
	// Dim image with one bright vertical stripe: the threshold must land
	// between the two clusters.
	img := uniformImage(10, 9, 0.2)
	for i := 0; i < 10; i++ {
		img.Set(i, 4, 0.9)
	}

	thr := AutoThreshold(img)
	if thr <= 0.2 || thr >= 0.9 {
		t.Fatalf("threshold %v not between clusters (0.2, 0.9)", thr)
	}
}

func TestApplyThresholdIsolatesStripeAfterDespeckle(t *testing.T) {
	// The bright stripe is the only region above threshold, so after
	// thresholding and despeckling it is exactly the non-foreground part.
	img := uniformImage(10, 9, 0.2)
	for i := 0; i < 10; i++ {
		img.Set(i, 4, 0.9)
	}

	mask := Despeckle(ApplyThreshold(img, AutoThreshold(img)))
	for i := 0; i < 10; i++ {
		if mask.At(i, 4) != 0 {
			t.Errorf("stripe pixel (%d,4) marked foreground", i)
		}
	}
	for _, j := range []int{0, 1, 2, 3, 5, 6, 7, 8} {
		for i := 0; i < 10; i++ {
			if mask.At(i, j) == 0 {
				t.Errorf("background pixel (%d,%d) lost to despeckle", i, j)
			}
		}
	}
}

func TestApplyThresholdMonotonic(t *testing.T) {
	// Raising the threshold can only add foreground pixels.
	img := mat.NewDense(20, 15, nil)
	for i := 0; i < 20; i++ {
		for j := 0; j < 15; j++ {
			img.Set(i, j, float64((i*7+j*13)%100)/100)
		}
	}

	prev := -1
	for _, thr := range []float64{0.0, 0.2, 0.4, 0.6, 0.8, 1.0} {
		n := countForeground(ApplyThreshold(img, thr))
		if n < prev {
			t.Fatalf("foreground count dropped from %d to %d at threshold %v", prev, n, thr)
		}
		prev = n
	}
}

func TestDespeckleRemovesIsolatedPixels(t *testing.T) {
	mask := mat.NewDense(20, 20, nil)
	// One lone speckle and one solid block.
	mask.Set(3, 3, 1)
	for i := 8; i < 18; i++ {
		for j := 8; j < 18; j++ {
			mask.Set(i, j, 1)
		}
	}

	out := Despeckle(mask)
	if out.At(3, 3) != 0 {
		t.Error("isolated speckle survived despeckle")
	}
	if out.At(12, 12) == 0 {
		t.Error("solid block center removed by despeckle")
	}
}
