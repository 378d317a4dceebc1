package cli

import (
	"encoding/csv"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"

	_ "golang.org/x/image/tiff"

	"gonum.org/v1/gonum/mat"

	"sonar-pick/internal/survey"
)

// loadRaster decodes a grayscale raster (TIFF, PNG or JPEG) into an
// intensity matrix normalized to [0,1]. Image rows map to depth pixels and
// columns to traces, matching the instrument raster orientation.
func loadRaster(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode raster %s: %w", path, err)
	}

	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	out := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// 16-bit luminance, Rec. 601 weights.
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			out.Set(y, x, lum/65535.0)
		}
	}
	return out, nil
}

// syntheticLine wraps a single raster as a one-frequency survey line so the
// pickers can run on plain image files. The raster is keyed as the 200 kHz
// band and covers every trace.
func syntheticLine(name string, img *mat.Dense, pixelResolution, draft float64) *survey.SurveyLine {
	_, cols := img.Dims()
	line := survey.NewSurveyLine(name)
	line.PixelResolution = pixelResolution
	line.Draft = draft

	line.TraceNum = make([]int, cols)
	traceNums := make([]int, cols)
	for i := 0; i < cols; i++ {
		line.TraceNum[i] = i + 1
		traceNums[i] = i + 1
	}
	line.Frequencies["200.0"] = img
	line.FreqTraceNum["200.0"] = traceNums
	line.RepairTraceNums()
	return line
}

// readDepthCSV loads trace,depth rows into a locked instrument-style depth
// line for use as a pre-impoundment reference surface.
func readDepthCSV(path, lineName string) (*survey.DepthLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open depth csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read depth csv %s: %w", path, err)
	}

	var idx []int
	var depths []float64
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("depth csv %s: row %d has %d fields, want 2", path, i+1, len(rec))
		}
		t, err := strconv.Atoi(rec[0])
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("depth csv %s row %d: %w", path, i+1, err)
		}
		d, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("depth csv %s row %d: %w", path, i+1, err)
		}
		idx = append(idx, t-1)
		depths = append(depths, d)
	}

	return survey.NewSDILine(lineName, path, survey.LineTypeCurrentSurface, idx, depths), nil
}

// writeDepthCSV emits trace,depth rows for a pick result.
func writeDepthCSV(path string, traceNum []int, depth []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"trace", "depth"}); err != nil {
		return err
	}
	for i, t := range traceNum {
		rec := []string{
			strconv.Itoa(t),
			strconv.FormatFloat(depth[i], 'f', 4, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
