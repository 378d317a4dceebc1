package imageops

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// mixture2 holds a two-component 1-D Gaussian mixture fit.
type mixture2 struct {
	mean   [2]float64
	stddev [2]float64
	weight [2]float64
}

func (m mixture2) minMean() float64 {
	return math.Min(m.mean[0], m.mean[1])
}

func (m mixture2) meanOfMeans() float64 {
	return (m.mean[0] + m.mean[1]) / 2
}

// fitMixture2 fits a two-component Gaussian mixture to x by EM.
// Components are initialized at mean ± stddev so the fit separates a low
// "noise band" cluster from a high "signal band" cluster.
func fitMixture2(x []float64) (mixture2, error) {
	if len(x) < 4 {
		return mixture2{}, fmt.Errorf("%w: %d samples", ErrInsufficientSamples, len(x))
	}
	mu, sigma := stat.MeanStdDev(x, nil)
	if sigma == 0 || math.IsNaN(sigma) {
		return mixture2{}, fmt.Errorf("%w: zero variance", ErrInsufficientSamples)
	}

	m := mixture2{
		mean:   [2]float64{mu - sigma, mu + sigma},
		stddev: [2]float64{sigma, sigma},
		weight: [2]float64{0.5, 0.5},
	}

	resp := make([]float64, len(x)) // responsibility of component 1
	const (
		maxIter = 100
		tol     = 1e-6
	)
	prev := math.Inf(-1)
	for iter := 0; iter < maxIter; iter++ {
		// E step
		n0 := distuv.Normal{Mu: m.mean[0], Sigma: m.stddev[0]}
		n1 := distuv.Normal{Mu: m.mean[1], Sigma: m.stddev[1]}
		logLik := 0.0
		for i, v := range x {
			p0 := m.weight[0] * n0.Prob(v)
			p1 := m.weight[1] * n1.Prob(v)
			total := p0 + p1
			if total == 0 {
				resp[i] = 0.5
				continue
			}
			resp[i] = p1 / total
			logLik += math.Log(total)
		}

		// M step
		var sum0, sum1, wsum0, wsum1 float64
		for i, v := range x {
			r1 := resp[i]
			r0 := 1 - r1
			wsum0 += r0
			wsum1 += r1
			sum0 += r0 * v
			sum1 += r1 * v
		}
		if wsum0 == 0 || wsum1 == 0 {
			return mixture2{}, fmt.Errorf("%w: component collapsed", ErrInsufficientSamples)
		}
		m.mean[0] = sum0 / wsum0
		m.mean[1] = sum1 / wsum1

		var var0, var1 float64
		for i, v := range x {
			d0 := v - m.mean[0]
			d1 := v - m.mean[1]
			var0 += (1 - resp[i]) * d0 * d0
			var1 += resp[i] * d1 * d1
		}
		m.stddev[0] = math.Sqrt(var0/wsum0) + 1e-12
		m.stddev[1] = math.Sqrt(var1/wsum1) + 1e-12
		m.weight[0] = wsum0 / float64(len(x))
		m.weight[1] = wsum1 / float64(len(x))

		if math.Abs(logLik-prev) < tol {
			break
		}
		prev = logLik
	}
	return m, nil
}

// FindTopBottom locates the usable signal band of an intensity image.
// Rows at the image extremes carry instrument noise; a two-component mixture
// fit over the per-row mean intensity separates noise rows from signal rows.
// bottom is the last row whose mean exceeds the lower component mean, plus
// buffer. top is the first row below the mixture midpoint, refined by
// refitting on a 100-row window; a degenerate refit window falls back to
// top+buffer. Any other refit failure is returned as an error.
func FindTopBottom(img *mat.Dense, buffer int) (top, bottom int, err error) {
	r, c := img.Dims()
	if r == 0 || c == 0 {
		return 0, 0, ErrEmptyImage
	}
	means := rowMeans(img)

	fit, err := fitMixture2(means)
	if err != nil {
		return 0, 0, fmt.Errorf("band detection: %w", err)
	}

	bottom = -1
	for i := len(means) - 1; i >= 0; i-- {
		if means[i] > fit.minMean() {
			bottom = i + buffer
			break
		}
	}
	if bottom < 0 {
		return 0, 0, fmt.Errorf("band detection: no rows above noise floor")
	}
	if bottom > r {
		bottom = r
	}

	top = -1
	mid := fit.meanOfMeans()
	for i, v := range means {
		if v < mid {
			top = i
			break
		}
	}
	if top < 0 {
		return 0, 0, fmt.Errorf("band detection: no rows below mixture midpoint")
	}

	// Refine top on a window just below the first estimate.
	end := top + 100
	if end > len(means) {
		end = len(means)
	}
	window := means[top:end]
	refit, rerr := fitMixture2(window)
	switch {
	case rerr == nil:
		off := -1
		for i, v := range window {
			if v < refit.minMean() {
				off = i
				break
			}
		}
		if off >= 0 {
			top += off
		} else {
			top += buffer
		}
	case errors.Is(rerr, ErrInsufficientSamples):
		top += buffer
	default:
		return 0, 0, fmt.Errorf("band refinement: %w", rerr)
	}

	if top >= bottom {
		return 0, 0, fmt.Errorf("band detection: degenerate band [%d:%d]", top, bottom)
	}
	return top, bottom, nil
}
