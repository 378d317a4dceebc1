package algorithm

import (
	"errors"
	"math"
	"testing"

	"sonar-pick/internal/survey"
)

// addCurrentSurface installs a flat current-surface line at the given pixel
// row on every trace.
func addCurrentSurface(t *testing.T, line *survey.SurveyLine, name string, row int) {
	t.Helper()
	n := len(line.TraceNum)
	idx := make([]int, n)
	depths := make([]float64, n)
	for i := 0; i < n; i++ {
		idx[i] = i
		depths[i] = float64(row)*line.PixelResolution + line.Draft
	}
	dl := survey.NewSDILine(name, "test.bin", survey.LineTypeCurrentSurface, idx, depths)
	if err := line.AddDepthLine(dl); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}
}

func TestPreImpoundmentProcessLine(t *testing.T) {
	// Bright reflector rows 24-28, dark sub-bottom return rows 30-36.
	// With the current surface at row 20 blanked, the pick is the top of
	// the sub-bottom return below the intensity maximum: row 30, depth
	// 30*0.1+2.0 = 5.
	img := testRaster(45, 12, 24, 28, 30, 36)
	line := testLine(img, 0)
	addCurrentSurface(t, line, "cs", 20)

	alg := NewPreImpoundmentThreshold()
	alg.Threshold = 0.2
	alg.CurrentSurfaceLine = "cs"

	traceNum, depth, err := alg.ProcessLine(line)
	if err != nil {
		t.Fatalf("ProcessLine: %v", err)
	}
	if len(traceNum) != 12 || len(depth) != 12 {
		t.Fatalf("lengths %d/%d, want 12/12", len(traceNum), len(depth))
	}
	for i := range depth {
		if math.Abs(depth[i]-5.0) > 1e-9 {
			t.Errorf("trace %d: depth %v, want 5.0", i, depth[i])
		}
	}
}

func TestPreImpoundmentMissingReferenceLine(t *testing.T) {
	img := testRaster(45, 12, 24, 28, 30, 36)
	line := testLine(img, 0)

	alg := NewPreImpoundmentThreshold()
	alg.Threshold = 0.2
	alg.CurrentSurfaceLine = "does_not_exist"

	if _, _, err := alg.ProcessLine(line); !errors.Is(err, ErrUnknownLine) {
		t.Fatalf("error %v, want ErrUnknownLine", err)
	}
	// Nothing was committed to the record.
	if names := line.DepthLineNames(survey.LineTypePreImpoundment); len(names) != 0 {
		t.Errorf("depth lines %v committed on failure", names)
	}
}

func TestPreImpoundmentParamValidation(t *testing.T) {
	alg := NewPreImpoundmentThreshold()
	alg.CurrentSurfaceLine = ""
	if err := alg.ValidateParams(); !errors.Is(err, ErrBadParam) {
		t.Fatalf("error %v, want ErrBadParam", err)
	}

	alg = NewPreImpoundmentThreshold()
	alg.Threshold = 2.0
	if err := alg.ValidateParams(); !errors.Is(err, ErrBadParam) {
		t.Fatalf("error %v, want ErrBadParam", err)
	}
}

func TestPreImpoundmentArgsSnapshot(t *testing.T) {
	alg := NewPreImpoundmentThreshold()
	alg.Frequency = "50"
	alg.Threshold = 0.3
	alg.CurrentSurfaceLine = "cs"

	args := alg.Args()
	want := map[string]any{
		"frequency":            "50",
		"threshold":            0.3,
		"threshold_offset":     0.0,
		"current_surface_line": "cs",
	}
	if !survey.ArgsMatch(args, want) {
		t.Errorf("args %v, want %v", args, want)
	}
}
