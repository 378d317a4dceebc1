package imageops

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InterpolateNaNs fills NaN gaps by linear interpolation between the nearest
// valid neighbors and rounds to whole pixel rows. Values outside the valid
// range are clamped to the nearest anchor. Fails with ErrAllNaN when no
// anchor exists.
func InterpolateNaNs(vals []float64) ([]int, error) {
	anchors := make([]int, 0, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 0 {
		return nil, ErrAllNaN
	}

	out := make([]int, len(vals))
	a := 0 // index into anchors of the first anchor >= i
	for i, v := range vals {
		if !math.IsNaN(v) {
			out[i] = int(math.Round(v))
			for a < len(anchors) && anchors[a] <= i {
				a++
			}
			continue
		}
		switch {
		case a == 0:
			out[i] = int(math.Round(vals[anchors[0]]))
		case a == len(anchors):
			out[i] = int(math.Round(vals[anchors[len(anchors)-1]]))
		default:
			lo, hi := anchors[a-1], anchors[a]
			frac := float64(i-lo) / float64(hi-lo)
			v := vals[lo] + frac*(vals[hi]-vals[lo])
			out[i] = int(math.Round(v))
		}
	}
	return out, nil
}

// ConvertToDepth turns pixel-row picks into physical depths:
//
//	depth = row*pixelResolution + draft - heave
//
// NaN gaps are interpolated first so the returned profile is dense. heave is
// per trace and must match len(rows); pass nil for no heave correction.
func ConvertToDepth(rows []float64, pixelResolution, draft float64, heave []float64) ([]float64, error) {
	if heave != nil && len(heave) != len(rows) {
		return nil, fmt.Errorf("heave length %d does not match %d traces", len(heave), len(rows))
	}

	px, err := InterpolateNaNs(rows)
	if err != nil {
		return nil, err
	}

	depths := make([]float64, len(px))
	for i, p := range px {
		d := float64(p)*pixelResolution + draft
		if heave != nil {
			d -= heave[i]
		}
		depths[i] = d
	}
	return depths, nil
}

// ClearImageAboveLine blanks each column above the given surface row with
// that column's own median over the blanked span. This removes the strong
// current-surface reflector so a deeper, weaker reflector can be picked.
// The image is modified in place.
func ClearImageAboveLine(img *mat.Dense, surfaceLocs []int) error {
	r, c := img.Dims()
	if len(surfaceLocs) != c {
		return fmt.Errorf("surface locations length %d does not match %d columns", len(surfaceLocs), c)
	}

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		p := surfaceLocs[j]
		if p <= 0 {
			continue
		}
		if p > r {
			p = r
		}
		mat.Col(col, j, img)
		m := median(col[:p])
		for i := 0; i < p; i++ {
			img.Set(i, j, m)
		}
	}
	return nil
}
