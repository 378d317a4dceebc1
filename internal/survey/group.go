package survey

// Group is a user-defined collection of survey lines that share processing
// settings, so one algorithm configuration can be applied across all of
// them at once.
type Group struct {
	Name  string
	Lines []string
}

// Contains reports whether the group holds the named line.
func (g Group) Contains(lineName string) bool {
	for _, n := range g.Lines {
		if n == lineName {
			return true
		}
	}
	return false
}

// Select resolves the group's line names against a set of loaded records,
// skipping names with no loaded record.
func (g Group) Select(lines map[string]*SurveyLine) []*SurveyLine {
	var out []*SurveyLine
	for _, n := range g.Lines {
		if sl, ok := lines[n]; ok {
			out = append(out, sl)
		}
	}
	return out
}
