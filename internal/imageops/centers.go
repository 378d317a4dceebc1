package imageops

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Surface selects the edge-search direction relative to the center line.
type Surface int

const (
	// SurfaceUpper searches upward from the center (current lake bed).
	SurfaceUpper Surface = iota
	// SurfaceLower searches downward from the center (pre-impoundment).
	SurfaceLower
)

func (s Surface) String() string {
	if s == SurfaceUpper {
		return "upper"
	}
	return "lower"
}

// DefaultCenterKernel is the median-filter width used by FindCenters.
const DefaultCenterKernel = 9

// FindCenters returns the row of strongest reflection for each column,
// smoothed with a 1-D median filter of the given width. The result anchors
// the edge search: the true surface boundary lies near the brightest return.
func FindCenters(img *mat.Dense, kernelSize int) ([]int, error) {
	r, c := img.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyImage
	}
	if kernelSize < 1 || kernelSize%2 == 0 {
		return nil, fmt.Errorf("median kernel size must be odd and positive, got %d", kernelSize)
	}

	argmax := make([]int, c)
	for j := 0; j < c; j++ {
		best := 0
		bestVal := img.At(0, j)
		for i := 1; i < r; i++ {
			if v := img.At(i, j); v > bestVal {
				bestVal = v
				best = i
			}
		}
		argmax[j] = best
	}

	return medianFilter(argmax, kernelSize), nil
}

// medianFilter applies a sliding median of width k, zero-padded at the
// edges.
func medianFilter(x []int, k int) []int {
	half := k / 2
	out := make([]int, len(x))
	window := make([]int, 0, k)
	for i := range x {
		window = window[:0]
		for d := -half; d <= half; d++ {
			idx := i + d
			if idx < 0 || idx >= len(x) {
				window = append(window, 0)
				continue
			}
			window = append(window, x[idx])
		}
		sort.Ints(window)
		out[i] = window[len(window)/2]
	}
	return out
}

// FindEdge locates the surface boundary for each column of a binary mask.
// For SurfaceUpper it returns the last foreground row strictly above the
// column's center; for SurfaceLower the first foreground row at or below it.
// Columns with no foreground in the search direction get NaN.
func FindEdge(mask *mat.Dense, centers []int, surface Surface) ([]float64, error) {
	r, c := mask.Dims()
	if c != len(centers) {
		return nil, fmt.Errorf("centers length %d does not match %d columns", len(centers), c)
	}

	edges := make([]float64, c)
	for j := 0; j < c; j++ {
		p := centers[j]
		if p < 0 {
			p = 0
		}
		if p > r {
			p = r
		}
		edges[j] = math.NaN()
		if surface == SurfaceUpper {
			for i := p - 1; i >= 0; i-- {
				if mask.At(i, j) != 0 {
					edges[j] = float64(i)
					break
				}
			}
			continue
		}
		for i := p; i < r; i++ {
			if mask.At(i, j) != 0 {
				edges[j] = float64(i)
				break
			}
		}
	}
	return edges, nil
}
