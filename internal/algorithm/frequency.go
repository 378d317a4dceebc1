package algorithm

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"sonar-pick/internal/imageops"
	"sonar-pick/internal/survey"
)

// frequencyLabels are the selectable sonar bands in kHz.
var frequencyLabels = []string{"200", "50", "24"}

func validFrequencyLabel(label string) bool {
	for _, l := range frequencyLabels {
		if l == label {
			return true
		}
	}
	return false
}

// resolveFrequency maps a requested band label to the closest raster
// actually present on the line. Instrument files key rasters by measured
// kHz values ("208.0", "51.2", ...), so an exact label match is the
// exception. Returns a working copy of the raster, NaN-filled with the
// image median, plus the frequency's 1-based trace numbers.
func resolveFrequency(line *survey.SurveyLine, label string) (*mat.Dense, []int, error) {
	want, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadParam, label)
	}
	if len(line.Frequencies) == 0 {
		return nil, nil, fmt.Errorf("%w: line %s has no intensity rasters", ErrUnknownFrequency, line.Name)
	}

	bestKey := ""
	bestDiff := math.Inf(1)
	for key := range line.Frequencies {
		v, err := strconv.ParseFloat(key, 64)
		if err != nil {
			continue
		}
		if d := math.Abs(v - want); d < bestDiff {
			bestDiff = d
			bestKey = key
		}
	}
	if bestKey == "" {
		return nil, nil, fmt.Errorf("%w: no numeric raster key matches %q", ErrUnknownFrequency, label)
	}

	traceNums, ok := line.FreqTraceNum[bestKey]
	if !ok {
		return nil, nil, fmt.Errorf("%w: raster %q has no trace numbers", ErrUnknownFrequency, bestKey)
	}
	_, cols := line.Frequencies[bestKey].Dims()
	if cols != len(traceNums) {
		return nil, nil, fmt.Errorf("raster %q has %d columns but %d trace numbers", bestKey, cols, len(traceNums))
	}

	img := mat.DenseCopyOf(line.Frequencies[bestKey])
	imageops.FillNaNs(img)
	return img, traceNums, nil
}

// scatterEdges places per-column edge rows into a full-length depth array
// indexed by the frequency's 1-based trace numbers. Traces not covered by
// the frequency stay NaN for interpolation.
func scatterEdges(n int, freqTraceNums []int, edges []float64) ([]float64, error) {
	depth := make([]float64, n)
	for i := range depth {
		depth[i] = math.NaN()
	}
	for k, t := range freqTraceNums {
		if t < 1 || t > n {
			return nil, fmt.Errorf("trace number %d outside 1..%d", t, n)
		}
		depth[t-1] = edges[k]
	}
	return depth, nil
}
