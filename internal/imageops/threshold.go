package imageops

import (
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// otsuBins is the histogram resolution for automatic thresholding.
const otsuBins = 256

// AutoThreshold computes an Otsu bi-modal threshold over the intensity image.
// The histogram spans the image's own value range, so it works for rasters
// normalized to [0,1] as well as raw instrument counts.
func AutoThreshold(img *mat.Dense) float64 {
	r, c := img.Dims()
	lo, hi := mat.Min(img), mat.Max(img)
	if hi <= lo {
		return lo
	}

	hist := make([]int, otsuBins)
	binWidth := (hi - lo) / otsuBins
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			bin := int((img.At(i, j) - lo) / binWidth)
			if bin >= otsuBins {
				bin = otsuBins - 1
			}
			hist[bin]++
		}
	}

	total := r * c
	var sumAll float64
	for b, n := range hist {
		sumAll += float64(b) * float64(n)
	}

	// Maximize between-class variance.
	var (
		sumBg, wBg float64
		bestVar    float64
		bestBin    int
	)
	for b, n := range hist {
		wBg += float64(n)
		if wBg == 0 {
			continue
		}
		wFg := float64(total) - wBg
		if wFg == 0 {
			break
		}
		sumBg += float64(b) * float64(n)
		meanBg := sumBg / wBg
		meanFg := (sumAll - sumBg) / wFg
		d := meanBg - meanFg
		v := wBg * wFg * d * d
		if v > bestVar {
			bestVar = v
			bestBin = b
		}
	}

	// Bin center, so exact low-cluster values fall below the threshold.
	return lo + (float64(bestBin)+0.5)*binWidth
}

// ApplyThreshold builds a binary mask marking pixels below the threshold as
// foreground (1). The sediment return is dark against the bright water
// column, so foreground is the low-intensity side. Despeckle the result
// before edge search.
func ApplyThreshold(img *mat.Dense, threshold float64) *mat.Dense {
	r, c := img.Dims()
	mask := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if img.At(i, j) < threshold {
				mask.Set(i, j, 1)
			}
		}
	}
	return mask
}

// despeckleRadius is the disk radius of the opening kernel.
const despeckleRadius = 3

// Despeckle suppresses isolated foreground pixels in a binary mask with a
// morphological opening (disk-shaped kernel).
func Despeckle(mask *mat.Dense) *mat.Dense {
	r, c := mask.Dims()
	if r == 0 || c == 0 {
		return mask
	}

	src := gocv.NewMatWithSize(r, c, gocv.MatTypeCV8U)
	defer src.Close()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if mask.At(i, j) != 0 {
				src.SetUCharAt(i, j, 255)
			}
		}
	}

	side := 2*despeckleRadius + 1
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Point{X: side, Y: side})
	defer kernel.Close()

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(src, &opened, gocv.MorphOpen, kernel)

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if opened.GetUCharAt(i, j) != 0 {
				out.Set(i, j, 1)
			}
		}
	}
	return out
}
