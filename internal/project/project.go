// Package project provides survey project file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"sonar-pick/internal/survey"
)

// File represents a sonar picking project file (.sonarproj). It holds
// the picking state for every survey line in a survey; the raw
// instrument arrays stay in their source files and are referenced by
// path.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Lake     string    `json:"lake,omitempty"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Data directory (relative to project file)
	DataDir string `json:"data_dir,omitempty"`

	// Picking state keyed by survey line name
	Lines map[string]survey.LineState `json:"lines,omitempty"`

	// Named groups of survey lines
	Groups []survey.Group `json:"groups,omitempty"`

	// User settings
	Settings Settings `json:"settings,omitempty"`
}

// Settings holds user preferences for the project.
type Settings struct {
	DefaultFrequency string  `json:"default_frequency,omitempty"`
	DefaultThreshold float64 `json:"default_threshold,omitempty"`
	RepairTraceNums  bool    `json:"repair_trace_nums"`
}

// New creates a new project file with default settings.
func New(name, lake string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Lake:     lake,
		Created:  now,
		Modified: now,
		Lines:    make(map[string]survey.LineState),
		Settings: Settings{
			DefaultFrequency: "200",
			DefaultThreshold: -0.1,
			RepairTraceNums:  true,
		},
	}
}

// Load loads a project from a .sonarproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}
	if proj.Lines == nil {
		proj.Lines = make(map[string]survey.LineState)
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Store snapshots a survey line's picking state into the project.
func (p *File) Store(line *survey.SurveyLine) {
	if p.Lines == nil {
		p.Lines = make(map[string]survey.LineState)
	}
	p.Lines[line.Name] = line.State()
	p.Modified = time.Now()
}

// Restore applies the stored picking state, if any, to a loaded line.
func (p *File) Restore(line *survey.SurveyLine) error {
	st, ok := p.Lines[line.Name]
	if !ok {
		return nil
	}
	return line.RestoreState(st)
}

// Group returns the named group, if the project defines it.
func (p *File) Group(name string) (survey.Group, bool) {
	for _, g := range p.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return survey.Group{}, false
}

// SetDataDir sets the data directory path (relative to project).
func (p *File) SetDataDir(projectPath, dataDir string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), dataDir)
	if err != nil {
		p.DataDir = dataDir
	} else {
		p.DataDir = rel
	}
	p.Modified = time.Now()
}

// GetDataDir returns the absolute path to the data directory.
func (p *File) GetDataDir(projectPath string) string {
	if p.DataDir == "" {
		return filepath.Dir(projectPath)
	}
	if filepath.IsAbs(p.DataDir) {
		return p.DataDir
	}
	return filepath.Join(filepath.Dir(projectPath), p.DataDir)
}
