package algorithm

import (
	"fmt"

	"sonar-pick/internal/imageops"
	"sonar-pick/internal/survey"
)

// PreImpoundmentName is the registered display name of the
// pre-impoundment picker.
const PreImpoundmentName = "PreImpoundment Threshold Algorithm"

// PreImpoundmentThreshold picks the original ground surface beneath the
// accumulated sediment. The strong current-surface reflector is blanked
// using an existing current-surface depth line, then the weaker sub-bottom
// return is picked below the remaining intensity maximum.
type PreImpoundmentThreshold struct {
	// Frequency selects the raster band: "200", "50" or "24" kHz.
	Frequency string

	// Threshold in [0,1] is a manual intensity cutoff; negative values
	// select Otsu auto-thresholding.
	Threshold float64

	// ThresholdOffset is added to the auto threshold. Ignored in manual
	// mode.
	ThresholdOffset float64

	// CurrentSurfaceLine names the current-surface depth line used as the
	// occlusion mask. It must exist on the survey line.
	CurrentSurfaceLine string
}

// NewPreImpoundmentThreshold returns the picker with default parameters:
// 200 kHz, auto threshold, instrument-imported current surface.
func NewPreImpoundmentThreshold() *PreImpoundmentThreshold {
	return &PreImpoundmentThreshold{
		Frequency:          "200",
		Threshold:          -0.1,
		CurrentSurfaceLine: "current_surface_from_bin",
	}
}

func (a *PreImpoundmentThreshold) Name() string { return PreImpoundmentName }

func (a *PreImpoundmentThreshold) LineKind() survey.LineType { return survey.LineTypePreImpoundment }

func (a *PreImpoundmentThreshold) ArgList() []string {
	return []string{"frequency", "threshold", "threshold_offset", "current_surface_line"}
}

func (a *PreImpoundmentThreshold) Args() map[string]any {
	return map[string]any{
		"frequency":            a.Frequency,
		"threshold":            a.Threshold,
		"threshold_offset":     a.ThresholdOffset,
		"current_surface_line": a.CurrentSurfaceLine,
	}
}

func (a *PreImpoundmentThreshold) Instructions() string {
	return `Autodetects the pre-impoundment surface from the selected intensity image.

Steps:
  1) Clear the image above the selected current-surface line
  2) Track the line of maximum intensity (approximate center of the sediment return)
  3) Compute a threshold intensity (Otsu) or take the manual value
  4) Build a binary mask from the threshold
  5) Despeckle the mask with a binary opening
  6) Pick the mask edge below the center line

Parameters:
  frequency            = raster band to use: 200 (default), 50 or 24
  threshold            = 0.0 - 1.0 manual cutoff; negative picks Otsu automatically
  threshold_offset     = +/- adjustment applied to the automatic threshold only
  current_surface_line = name of the current-surface line to blank above (case sensitive)`
}

// ValidateParams checks ranges and the reference-line name presence.
func (a *PreImpoundmentThreshold) ValidateParams() error {
	if !validFrequencyLabel(a.Frequency) {
		return fmt.Errorf("%w: frequency %q not one of 200/50/24", ErrBadParam, a.Frequency)
	}
	if a.Threshold < -0.1 || a.Threshold > 1.0 {
		return fmt.Errorf("%w: threshold %v outside [-0.1, 1.0]", ErrBadParam, a.Threshold)
	}
	if a.CurrentSurfaceLine == "" {
		return fmt.Errorf("%w: current_surface_line is required", ErrBadParam)
	}
	return nil
}

// surfacePixelRows inverts the depth conversion for the reference line,
// turning physical depths back into pixel rows:
//
//	row = (depth + heave - draft) / pixelResolution
func surfacePixelRows(depths []float64, line *survey.SurveyLine) []int {
	rows := make([]int, len(depths))
	for i, d := range depths {
		h := 0.0
		if line.Heave != nil && i < len(line.Heave) {
			h = line.Heave[i]
		}
		rows[i] = int((d + h - line.Draft) / line.PixelResolution)
	}
	return rows
}

// ProcessLine extracts the pre-impoundment profile. Fails with
// ErrUnknownLine when the configured current-surface reference is absent;
// nothing is written on failure.
func (a *PreImpoundmentThreshold) ProcessLine(line *survey.SurveyLine) ([]int, []float64, error) {
	if err := a.ValidateParams(); err != nil {
		return nil, nil, err
	}

	img, freqTraceNums, err := resolveFrequency(line, a.Frequency)
	if err != nil {
		return nil, nil, err
	}

	ref, ok := line.DepthLine(survey.LineTypeCurrentSurface, a.CurrentSurfaceLine)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no current surface line named %q on line %s",
			ErrUnknownLine, a.CurrentSurfaceLine, line.Name)
	}
	refDepths := ref.DepthArray()
	allRows := surfacePixelRows(refDepths, line)

	// Restrict the occlusion rows to this frequency's trace subset.
	surfaceLocs := make([]int, len(freqTraceNums))
	for k, t := range freqTraceNums {
		if t < 1 || t > len(allRows) {
			return nil, nil, fmt.Errorf("current surface line %q has %d picks, trace %d out of range",
				a.CurrentSurfaceLine, len(allRows), t)
		}
		surfaceLocs[k] = allRows[t-1]
	}
	if err := imageops.ClearImageAboveLine(img, surfaceLocs); err != nil {
		return nil, nil, err
	}

	threshold := a.Threshold
	if threshold < 0 {
		threshold = imageops.AutoThreshold(img) + a.ThresholdOffset
	}
	mask := imageops.Despeckle(imageops.ApplyThreshold(img, threshold))

	centers, err := imageops.FindCenters(img, imageops.DefaultCenterKernel)
	if err != nil {
		return nil, nil, err
	}
	edges, err := imageops.FindEdge(mask, centers, imageops.SurfaceLower)
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
