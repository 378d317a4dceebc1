package survey

import (
	"errors"
	"fmt"
	"image/color"

	"sonar-pick/pkg/colorutil"
)

var (
	// ErrLocked is returned for any mutation of a locked depth line.
	ErrLocked = errors.New("depth line is locked")

	// ErrEmptyLine is returned when committing a depth line with no data.
	ErrEmptyLine = errors.New("depth line has no data")
)

// LineType says which surface a depth line describes.
type LineType int

const (
	// LineTypeCurrentSurface is the lake bed as observed today.
	LineTypeCurrentSurface LineType = iota
	// LineTypePreImpoundment is the original ground surface beneath the
	// accumulated sediment.
	LineTypePreImpoundment
)

func (t LineType) String() string {
	if t == LineTypeCurrentSurface {
		return "current surface"
	}
	return "pre-impoundment surface"
}

// Source says how a depth line was produced.
type Source int

const (
	SourceSDIFile Source = iota
	SourceAlgorithm
	SourcePreviousLine
	SourceManual
)

func (s Source) String() string {
	switch s {
	case SourceSDIFile:
		return "sdi_file"
	case SourceAlgorithm:
		return "algorithm"
	case SourcePreviousLine:
		return "previous depth line"
	default:
		return "manual"
	}
}

// DepthLine is a named depth-vs-trace profile for one survey line, together
// with the provenance needed to reproduce it. Lines imported straight from
// the instrument file are locked for good; lines from algorithms or manual
// edits can be locked and unlocked explicitly. All array access goes through
// methods so the lock invariant cannot be bypassed.
type DepthLine struct {
	Name           string
	SurveyLineName string
	LineType       LineType
	Source         Source
	SourceName     string
	Args           map[string]any
	Color          color.RGBA
	Notes          string

	indexArray []int
	depthArray []float64
	edited     bool
	locked     bool
}

// NewDepthLine builds an unlocked depth line. indexArray holds 0-based trace
// indices; depthArray the matching depths.
func NewDepthLine(name string, lineType LineType, source Source, indexArray []int, depthArray []float64) *DepthLine {
	dl := &DepthLine{
		Name:     name,
		LineType: lineType,
		Source:   source,
		Color:    colorutil.LineColor(name),
	}
	dl.indexArray = append([]int(nil), indexArray...)
	dl.depthArray = append([]float64(nil), depthArray...)
	return dl
}

// NewSDILine builds a depth line imported from an instrument file. SDI
// lines are permanently locked.
func NewSDILine(name, sourceFile string, lineType LineType, indexArray []int, depthArray []float64) *DepthLine {
	dl := NewDepthLine(name, lineType, SourceSDIFile, indexArray, depthArray)
	dl.SourceName = sourceFile
	dl.locked = true
	return dl
}

// IndexArray returns a copy of the 0-based trace indices.
func (dl *DepthLine) IndexArray() []int {
	return append([]int(nil), dl.indexArray...)
}

// DepthArray returns a copy of the depth values.
func (dl *DepthLine) DepthArray() []float64 {
	return append([]float64(nil), dl.depthArray...)
}

// Len returns the number of picks in the line.
func (dl *DepthLine) Len() int { return len(dl.depthArray) }

// Edited reports whether the line's depths were manually altered after
// creation. Once set it never clears for this instance.
func (dl *DepthLine) Edited() bool { return dl.edited }

// Locked reports whether the line is immutable.
func (dl *DepthLine) Locked() bool { return dl.locked }

// Lock makes the line immutable.
func (dl *DepthLine) Lock() { dl.locked = true }

// Unlock makes the line mutable again. SDI-sourced lines stay locked.
func (dl *DepthLine) Unlock() error {
	if dl.Source == SourceSDIFile {
		return fmt.Errorf("%w: instrument-imported lines cannot be unlocked", ErrLocked)
	}
	dl.locked = false
	return nil
}

// SetDepth alters a single depth value. This marks the line as edited.
func (dl *DepthLine) SetDepth(i int, depth float64) error {
	if dl.locked {
		return ErrLocked
	}
	if i < 0 || i >= len(dl.depthArray) {
		return fmt.Errorf("depth index %d out of range [0,%d)", i, len(dl.depthArray))
	}
	dl.depthArray[i] = depth
	dl.edited = true
	return nil
}

// SetArrays replaces both arrays wholesale. This marks the line as edited.
func (dl *DepthLine) SetArrays(indexArray []int, depthArray []float64) error {
	if dl.locked {
		return ErrLocked
	}
	if len(indexArray) != len(depthArray) {
		return fmt.Errorf("index/depth length mismatch: %d vs %d", len(indexArray), len(depthArray))
	}
	dl.indexArray = append([]int(nil), indexArray...)
	dl.depthArray = append([]float64(nil), depthArray...)
	dl.edited = true
	return nil
}

// SetArgs replaces the stored parameter snapshot.
func (dl *DepthLine) SetArgs(args map[string]any) error {
	if dl.locked {
		return ErrLocked
	}
	dl.Args = cloneArgs(args)
	return nil
}

// Validate checks the line is committable: equal-length, non-empty arrays.
func (dl *DepthLine) Validate() error {
	if len(dl.indexArray) == 0 || len(dl.depthArray) == 0 {
		return ErrEmptyLine
	}
	if len(dl.indexArray) != len(dl.depthArray) {
		return fmt.Errorf("index/depth length mismatch: %d vs %d", len(dl.indexArray), len(dl.depthArray))
	}
	return nil
}

// Clone deep-copies the line under a new name. The copy is unlocked, not
// edited, and records the original as its source.
func (dl *DepthLine) Clone(newName string) *DepthLine {
	c := NewDepthLine(newName, dl.LineType, SourcePreviousLine, dl.indexArray, dl.depthArray)
	c.SurveyLineName = dl.SurveyLineName
	c.SourceName = dl.Name
	c.Args = cloneArgs(dl.Args)
	c.Notes = dl.Notes
	return c
}

func cloneArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
