// Package imageops provides the image-processing primitives shared by the
// surface-picking algorithms: band detection, thresholding, despeckling,
// center-line tracking, edge search and depth conversion.
//
// Intensity images are gonum dense matrices with rows = depth pixels and
// columns = traces. All functions are pure unless documented otherwise.
package imageops

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrAllNaN indicates a depth array with no valid anchor values.
	ErrAllNaN = errors.New("all values are NaN")

	// ErrInsufficientSamples indicates too few (or degenerate) samples for
	// a mixture fit.
	ErrInsufficientSamples = errors.New("insufficient samples for mixture fit")

	// ErrEmptyImage indicates a zero-sized intensity matrix.
	ErrEmptyImage = errors.New("empty intensity image")
)

// FillNaNs replaces NaN pixels with the median of the image's valid pixels.
// Instrument rasters carry NaN in dropout regions; both pickers run this
// before any thresholding. The image is modified in place.
func FillNaNs(img *mat.Dense) {
	r, c := img.Dims()
	valid := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := img.At(i, j); !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
	}
	if len(valid) == 0 {
		return
	}
	m := median(valid)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(img.At(i, j)) {
				img.Set(i, j, m)
			}
		}
	}
}

// Column copies column j of img into a new slice.
func Column(img *mat.Dense, j int) []float64 {
	r, _ := img.Dims()
	col := make([]float64, r)
	mat.Col(col, j, img)
	return col
}

// rowMeans returns the mean intensity of each row.
func rowMeans(img *mat.Dense) []float64 {
	r, c := img.Dims()
	means := make([]float64, r)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += img.At(i, j)
		}
		means[i] = sum / float64(c)
	}
	return means
}

// median returns the middle value of vals, averaging the two middle values
// for even lengths. The input is not modified.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
