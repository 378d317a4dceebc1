package algorithm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"sonar-pick/internal/imageops"
	"sonar-pick/internal/survey"
)

// CurrentSurfaceName is the registered display name of the current-surface
// picker.
const CurrentSurfaceName = "Current Surface Threshold Algorithm"

// bandBuffer pads the detected top/bottom noise bands by this many rows.
const bandBuffer = 5

// CurrentSurfaceThreshold picks the present-day lake bed from an intensity
// raster. The sediment return is the strongest reflector; the pick is the
// upper edge of the thresholded return, searched upward from the per-column
// intensity maximum.
type CurrentSurfaceThreshold struct {
	// Frequency selects the raster band: "200", "50" or "24" kHz.
	Frequency string

	// Threshold in [0,1] is a manual intensity cutoff; negative values
	// select Otsu auto-thresholding.
	Threshold float64

	// ThresholdOffset is added to the auto threshold. Ignored in manual
	// mode.
	ThresholdOffset float64

	// BlankAboveDistance/BlankBelowDistance (physical units) override the
	// automatic noise-band detection when positive.
	BlankAboveDistance float64
	BlankBelowDistance float64
}

// NewCurrentSurfaceThreshold returns the picker with default parameters:
// 200 kHz, auto threshold, auto band detection.
func NewCurrentSurfaceThreshold() *CurrentSurfaceThreshold {
	return &CurrentSurfaceThreshold{
		Frequency:          "200",
		Threshold:          -0.1,
		BlankAboveDistance: -1,
		BlankBelowDistance: -1,
	}
}

func (a *CurrentSurfaceThreshold) Name() string { return CurrentSurfaceName }

func (a *CurrentSurfaceThreshold) LineKind() survey.LineType { return survey.LineTypeCurrentSurface }

func (a *CurrentSurfaceThreshold) ArgList() []string {
	return []string{"frequency", "threshold", "threshold_offset", "blank_above_distance", "blank_below_distance"}
}

func (a *CurrentSurfaceThreshold) Args() map[string]any {
	return map[string]any{
		"frequency":            a.Frequency,
		"threshold":            a.Threshold,
		"threshold_offset":     a.ThresholdOffset,
		"blank_above_distance": a.BlankAboveDistance,
		"blank_below_distance": a.BlankBelowDistance,
	}
}

func (a *CurrentSurfaceThreshold) Instructions() string {
	return `Autodetects the current lake-bed surface from the selected intensity image.

Steps:
  1) Remove instrument noise bands at the top and bottom of the image
  2) Track the line of maximum intensity (approximate center of the sediment return)
  3) Compute a threshold intensity (Otsu) or take the manual value
  4) Build a binary mask from the threshold
  5) Despeckle the mask with a binary opening
  6) Pick the mask edge above the center line

Parameters:
  frequency            = raster band to use: 200 (default), 50 or 24
  threshold            = 0.0 - 1.0 manual cutoff; negative picks Otsu automatically
  threshold_offset     = +/- adjustment applied to the automatic threshold only
  blank_above_distance = ignore image above this depth; negative detects automatically
  blank_below_distance = ignore image below this depth; negative detects automatically`
}

// ValidateParams checks ranges before a run so a bad configuration fails
// fast instead of mid-pick.
func (a *CurrentSurfaceThreshold) ValidateParams() error {
	if !validFrequencyLabel(a.Frequency) {
		return fmt.Errorf("%w: frequency %q not one of 200/50/24", ErrBadParam, a.Frequency)
	}
	if a.Threshold < -0.1 || a.Threshold > 1.0 {
		return fmt.Errorf("%w: threshold %v outside [-0.1, 1.0]", ErrBadParam, a.Threshold)
	}
	return nil
}

// ProcessLine extracts the current-surface profile. The returned traceNum
// is the line's full 1-based trace sequence; depth is the same length with
// interpolated values at traces the frequency does not cover. The survey
// line is not mutated.
func (a *CurrentSurfaceThreshold) ProcessLine(line *survey.SurveyLine) ([]int, []float64, error) {
	if err := a.ValidateParams(); err != nil {
		return nil, nil, err
	}

	img, freqTraceNums, err := resolveFrequency(line, a.Frequency)
	if err != nil {
		return nil, nil, err
	}
	rows, cols := img.Dims()

	top, bottom := -1, -1
	if a.BlankAboveDistance > 0 {
		top = int(a.BlankAboveDistance / line.PixelResolution)
	}
	if a.BlankBelowDistance > 0 {
		bottom = int(a.BlankBelowDistance / line.PixelResolution)
	}
	if top < 0 || bottom < 0 {
		autoTop, autoBottom, err := imageops.FindTopBottom(img, bandBuffer)
		if err != nil {
			return nil, nil, err
		}
		if top < 0 {
			top = autoTop
		}
		if bottom < 0 {
			bottom = autoBottom
		}
	}
	if bottom > rows {
		bottom = rows
	}
	if top < 0 || top >= bottom {
		return nil, nil, fmt.Errorf("%w: blank distances give empty band [%d:%d]", ErrBadParam, top, bottom)
	}

	threshold := a.Threshold
	if threshold < 0 {
		threshold = imageops.AutoThreshold(img) + a.ThresholdOffset
	}
	mask := imageops.Despeckle(imageops.ApplyThreshold(img, threshold))

	band := img.Slice(top, bottom, 0, cols).(*mat.Dense)
	centers, err := imageops.FindCenters(band, imageops.DefaultCenterKernel)
	if err != nil {
		return nil, nil, err
	}
	for i := range centers {
		centers[i] += top
	}

	edges, err := imageops.FindEdge(mask, centers, imageops.SurfaceUpper)
	if err != nil {
		return nil, nil, err
	}

	depth, err := scatterEdges(len(line.TraceNum), freqTraceNums, edges)
	if err != nil {
		return nil, nil, err
	}
	depths, err := imageops.ConvertToDepth(depth, line.PixelResolution, line.Draft, line.Heave)
	if err != nil {
		return nil, nil, err
	}

	return append([]int(nil), line.TraceNum...), depths, nil
}
