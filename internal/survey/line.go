// Package survey holds the survey-line data model: raw per-trace arrays
// loaded from the instrument file, the candidate depth lines derived from
// them, trace-number consistency repair, and the apply/editing session
// rules.
package survey

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/mat"
)

// Status is the review state of a survey line.
type Status int

const (
	StatusPending Status = iota
	StatusApproved
	StatusBad
)

func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusBad:
		return "bad"
	default:
		return "pending"
	}
}

// SurveyLine is a single sonar survey line: the multi-frequency intensity
// rasters keyed by kHz label, the per-trace metadata arrays aligned with
// TraceNum, and the candidate depth lines picked from them.
//
// Raw fields are populated by the persistence loader; the depth-line
// dictionaries, final selections and mask are owned by the record and only
// reachable through methods so the uniqueness, type-routing and lock
// invariants hold.
type SurveyLine struct {
	Name string

	// TraceNum is the master trace numbering, 1..N after repair.
	TraceNum []int

	// Frequencies maps a kHz label to an intensity matrix with rows =
	// depth pixels and columns = the traces present at that frequency.
	Frequencies map[string]*mat.Dense

	// FreqTraceNum maps a kHz label to the 1-based global trace numbers
	// backing that frequency's columns. Subtract 1 to index TraceNum.
	FreqTraceNum map[string][]int

	// Locations are easting/northing sample positions, aligned with
	// TraceNum. LatLong carries the same positions in degrees.
	Locations []orb.Point
	LatLong   []orb.Point

	// NavigationLine is the survey track in map coordinates.
	NavigationLine orb.LineString

	Power []float64
	Gain  []float64

	// Depth correction terms:
	//	depth = pixel_row*PixelResolution + Draft - Heave
	Draft           float64
	Heave           []float64
	PixelResolution float64

	Status       Status
	StatusString string

	lakeDepths           map[string]*DepthLine
	preimpoundmentDepths map[string]*DepthLine
	finalLakeDepth       string
	finalPreimpoundment  string
	mask                 []bool
	repaired             bool
}

// NewSurveyLine builds an empty record; the loader fills the raw arrays and
// then calls RepairTraceNums before any algorithm touches the line.
func NewSurveyLine(name string) *SurveyLine {
	return &SurveyLine{
		Name:                 name,
		Frequencies:          make(map[string]*mat.Dense),
		FreqTraceNum:         make(map[string][]int),
		lakeDepths:           make(map[string]*DepthLine),
		preimpoundmentDepths: make(map[string]*DepthLine),
	}
}

// depthMap routes a line type to its owning dictionary.
func (sl *SurveyLine) depthMap(t LineType) map[string]*DepthLine {
	if t == LineTypeCurrentSurface {
		return sl.lakeDepths
	}
	return sl.preimpoundmentDepths
}

// AddDepthLine inserts a depth line into the dictionary matching its type.
// A name already held by a locked line cannot be replaced; replacing an
// unlocked line of the same name is an overwrite.
func (sl *SurveyLine) AddDepthLine(dl *DepthLine) error {
	if err := dl.Validate(); err != nil {
		return fmt.Errorf("depth line %q: %w", dl.Name, err)
	}
	m := sl.depthMap(dl.LineType)
	if existing, ok := m[dl.Name]; ok && existing.Locked() {
		return fmt.Errorf("depth line %q: %w", dl.Name, ErrLocked)
	}
	dl.SurveyLineName = sl.Name
	m[dl.Name] = dl
	return nil
}

// DepthLine looks up a depth line by type and name.
func (sl *SurveyLine) DepthLine(t LineType, name string) (*DepthLine, bool) {
	dl, ok := sl.depthMap(t)[name]
	return dl, ok
}

// RemoveDepthLine deletes a depth line. Removing a final selection clears
// the selection. Locked lines cannot be removed.
func (sl *SurveyLine) RemoveDepthLine(t LineType, name string) error {
	m := sl.depthMap(t)
	dl, ok := m[name]
	if !ok {
		return fmt.Errorf("no %s depth line named %q", t, name)
	}
	if dl.Locked() {
		return fmt.Errorf("depth line %q: %w", name, ErrLocked)
	}
	delete(m, name)
	if t == LineTypeCurrentSurface && sl.finalLakeDepth == name {
		sl.finalLakeDepth = ""
	}
	if t == LineTypePreImpoundment && sl.finalPreimpoundment == name {
		sl.finalPreimpoundment = ""
	}
	return nil
}

// DepthLineNames lists the names in one dictionary, unordered.
func (sl *SurveyLine) DepthLineNames(t LineType) []string {
	m := sl.depthMap(t)
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// SetFinalLakeDepth selects the current-surface line used for volume
// calculations. Empty clears the selection; otherwise the name must exist.
func (sl *SurveyLine) SetFinalLakeDepth(name string) error {
	if name != "" {
		if _, ok := sl.lakeDepths[name]; !ok {
			return fmt.Errorf("no current surface depth line named %q", name)
		}
	}
	sl.finalLakeDepth = name
	return nil
}

// SetFinalPreimpoundment selects the pre-impoundment line used to track
// sedimentation. Empty clears the selection; otherwise the name must exist.
func (sl *SurveyLine) SetFinalPreimpoundment(name string) error {
	if name != "" {
		if _, ok := sl.preimpoundmentDepths[name]; !ok {
			return fmt.Errorf("no pre-impoundment depth line named %q", name)
		}
	}
	sl.finalPreimpoundment = name
	return nil
}

// FinalLakeDepth returns the selected current-surface line name, or "".
func (sl *SurveyLine) FinalLakeDepth() string { return sl.finalLakeDepth }

// FinalPreimpoundment returns the selected pre-impoundment line name, or "".
func (sl *SurveyLine) FinalPreimpoundment() string { return sl.finalPreimpoundment }

// SetMask installs the per-trace exclusion mask. Length must match the
// trace count.
func (sl *SurveyLine) SetMask(mask []bool) error {
	if len(mask) != len(sl.TraceNum) {
		return fmt.Errorf("mask length %d does not match %d traces", len(mask), len(sl.TraceNum))
	}
	sl.mask = append([]bool(nil), mask...)
	return nil
}

// Mask returns a copy of the exclusion mask, nil when never set.
func (sl *SurveyLine) Mask() []bool {
	if sl.mask == nil {
		return nil
	}
	return append([]bool(nil), sl.mask...)
}

// ArraySizesOK verifies the per-trace arrays line up with the trace count.
// A mismatch is logged and reported via the record status string, not an
// error: the record stays loadable but algorithm runs against it are
// unsafe.
func (sl *SurveyLine) ArraySizesOK() bool {
	n := len(sl.TraceNum)
	ok := true
	check := func(name string, got int) {
		if got != n {
			log.Printf("survey line %s: %s size %d does not match %d traces", sl.Name, name, got, n)
			ok = false
		}
	}
	if sl.Locations != nil {
		check("locations", len(sl.Locations))
	}
	if sl.LatLong != nil {
		check("lat_long", len(sl.LatLong))
	}
	if sl.Power != nil {
		check("power", len(sl.Power))
	}
	if sl.Gain != nil {
		check("gain", len(sl.Gain))
	}
	if sl.Heave != nil {
		check("heave", len(sl.Heave))
	}
	if !ok {
		sl.StatusString = "array sizes don't match"
	}
	return ok
}
