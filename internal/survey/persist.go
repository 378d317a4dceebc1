package survey

import (
	"fmt"

	"sonar-pick/pkg/colorutil"
)

// DepthLineRecord is the persisted form of a DepthLine.
type DepthLineRecord struct {
	Name       string         `json:"name"`
	LineType   LineType       `json:"line_type"`
	Source     Source         `json:"source"`
	SourceName string         `json:"source_name,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
	Color      string         `json:"color,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Index      []int          `json:"index"`
	Depth      []float64      `json:"depth"`
	Locked     bool           `json:"locked"`
	Edited     bool           `json:"edited"`
}

// Record returns the persisted form of the line.
func (dl *DepthLine) Record() DepthLineRecord {
	return DepthLineRecord{
		Name:       dl.Name,
		LineType:   dl.LineType,
		Source:     dl.Source,
		SourceName: dl.SourceName,
		Args:       cloneArgs(dl.Args),
		Color:      colorutil.Hex(dl.Color),
		Notes:      dl.Notes,
		Index:      dl.IndexArray(),
		Depth:      dl.DepthArray(),
		Locked:     dl.locked,
		Edited:     dl.edited,
	}
}

// FromRecord rebuilds a depth line from its persisted form.
func FromRecord(r DepthLineRecord) *DepthLine {
	dl := NewDepthLine(r.Name, r.LineType, r.Source, r.Index, r.Depth)
	dl.SourceName = r.SourceName
	dl.Args = cloneArgs(r.Args)
	dl.Notes = r.Notes
	dl.locked = r.Locked
	dl.edited = r.Edited
	if c, err := colorutil.ParseHex(r.Color); err == nil {
		dl.Color = c
	}
	return dl
}

// LineState is the persisted picking state of one survey line: every
// depth line plus the final selections. Raw instrument arrays are not
// part of it; they reload from the source files.
type LineState struct {
	Status               Status            `json:"status"`
	StatusString         string            `json:"status_string,omitempty"`
	FinalLakeDepth       string            `json:"final_lake_depth,omitempty"`
	FinalPreimpoundment  string            `json:"final_preimpoundment,omitempty"`
	Mask                 []bool            `json:"mask,omitempty"`
	LakeDepths           []DepthLineRecord `json:"lake_depths,omitempty"`
	PreimpoundmentDepths []DepthLineRecord `json:"preimpoundment_depths,omitempty"`
}

// State snapshots the line's picking state for persistence.
func (sl *SurveyLine) State() LineState {
	st := LineState{
		Status:              sl.Status,
		StatusString:        sl.StatusString,
		FinalLakeDepth:      sl.finalLakeDepth,
		FinalPreimpoundment: sl.finalPreimpoundment,
		Mask:                sl.Mask(),
	}
	for _, name := range sl.DepthLineNames(LineTypeCurrentSurface) {
		dl := sl.lakeDepths[name]
		st.LakeDepths = append(st.LakeDepths, dl.Record())
	}
	for _, name := range sl.DepthLineNames(LineTypePreImpoundment) {
		dl := sl.preimpoundmentDepths[name]
		st.PreimpoundmentDepths = append(st.PreimpoundmentDepths, dl.Record())
	}
	return st
}

// RestoreState rebuilds the line's picking state from a snapshot. The
// raw arrays must already be loaded so the mask length can be checked.
func (sl *SurveyLine) RestoreState(st LineState) error {
	for _, r := range st.LakeDepths {
		if err := sl.AddDepthLine(FromRecord(r)); err != nil {
			return fmt.Errorf("restore %q: %w", r.Name, err)
		}
	}
	for _, r := range st.PreimpoundmentDepths {
		if err := sl.AddDepthLine(FromRecord(r)); err != nil {
			return fmt.Errorf("restore %q: %w", r.Name, err)
		}
	}
	if st.FinalLakeDepth != "" {
		if err := sl.SetFinalLakeDepth(st.FinalLakeDepth); err != nil {
			return err
		}
	}
	if st.FinalPreimpoundment != "" {
		if err := sl.SetFinalPreimpoundment(st.FinalPreimpoundment); err != nil {
			return err
		}
	}
	if len(st.Mask) > 0 {
		if err := sl.SetMask(st.Mask); err != nil {
			return err
		}
	}
	sl.Status = st.Status
	sl.StatusString = st.StatusString
	return nil
}
