package survey

import (
	"fmt"
	"reflect"
)

// Picker is the algorithm contract the session layer applies to lines. The
// concrete implementations live in internal/algorithm; the interface is
// declared here so applying stays decoupled from the algorithm registry.
type Picker interface {
	// Name is the registered display name, recorded as provenance.
	Name() string
	// LineKind says which surface the picker produces.
	LineKind() LineType
	// Args snapshots the picker's live parameter set.
	Args() map[string]any
	// ProcessLine extracts (traceNum, depth) for a repaired survey line.
	// traceNum is the full 1-based trace sequence; depth has the same
	// length. The line itself is not mutated.
	ProcessLine(line *SurveyLine) (traceNum []int, depth []float64, err error)
}

// Apply runs a picker over one survey line and commits the result as a new
// depth line. The stored Args snapshot makes the pick reproducible. With
// makeFinal the new line becomes the record's final selection for its type.
// No partial state is left behind on failure.
func Apply(p Picker, line *SurveyLine, name string, makeFinal bool) (*DepthLine, error) {
	if existing, ok := line.DepthLine(p.LineKind(), name); ok && existing.Locked() {
		return nil, fmt.Errorf("depth line %q: %w", name, ErrLocked)
	}

	traceNum, depth, err := p.ProcessLine(line)
	if err != nil {
		return nil, fmt.Errorf("algorithm %q on line %s: %w", p.Name(), line.Name, err)
	}
	if len(traceNum) != len(depth) {
		return nil, fmt.Errorf("algorithm %q on line %s: trace/depth length mismatch %d vs %d",
			p.Name(), line.Name, len(traceNum), len(depth))
	}

	idx := make([]int, len(traceNum))
	for i, t := range traceNum {
		idx[i] = t - 1
	}

	dl := NewDepthLine(name, p.LineKind(), SourceAlgorithm, idx, depth)
	dl.SourceName = p.Name()
	dl.Args = cloneArgs(p.Args())

	if err := line.AddDepthLine(dl); err != nil {
		return nil, err
	}
	if makeFinal {
		if dl.LineType == LineTypeCurrentSurface {
			err = line.SetFinalLakeDepth(name)
		} else {
			err = line.SetFinalPreimpoundment(name)
		}
		if err != nil {
			return nil, err
		}
	}
	return dl, nil
}

// ApplyToGroup runs a picker over every line in the slice, committing a
// depth line of the same name on each. Failures do not abort the batch;
// they are collected per line name. The returned map is nil when every line
// succeeded.
func ApplyToGroup(p Picker, lines []*SurveyLine, name string, makeFinal bool) map[string]error {
	var errs map[string]error
	for _, line := range lines {
		if _, err := Apply(p, line, name, makeFinal); err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			errs[line.Name] = err
		}
	}
	return errs
}

// ArgsMatch reports whether a picker's live parameters equal a stored
// depth-line Args snapshot. Matching is strict key-for-key equality; a
// mismatch means the stored line was produced with different settings and
// must not be silently treated as current.
func ArgsMatch(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
