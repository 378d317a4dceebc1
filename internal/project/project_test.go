package project

import (
	"path/filepath"
	"testing"

	"sonar-pick/internal/survey"
)

func TestProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lake_travis.sonarproj")

	line := survey.NewSurveyLine("line_03")
	line.TraceNum = []int{1, 2, 3}
	line.RepairTraceNums()

	dl := survey.NewDepthLine("picked", survey.LineTypeCurrentSurface,
		survey.SourceAlgorithm, []int{0, 1, 2}, []float64{2.0, 2.1, 2.2})
	dl.SourceName = "Current Surface Threshold Algorithm"
	dl.Args = map[string]any{"frequency": "200"}
	if err := line.AddDepthLine(dl); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}
	if err := line.SetFinalLakeDepth("picked"); err != nil {
		t.Fatalf("SetFinalLakeDepth: %v", err)
	}
	line.Status = survey.StatusApproved

	proj := New("travis_2014", "Lake Travis")
	proj.Store(line)
	proj.Groups = append(proj.Groups, survey.Group{Name: "all", Lines: []string{"line_03"}})
	if err := proj.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "travis_2014" || loaded.Lake != "Lake Travis" {
		t.Errorf("identity %q/%q", loaded.Name, loaded.Lake)
	}
	if _, ok := loaded.Group("all"); !ok {
		t.Error("group lost in round trip")
	}

	fresh := survey.NewSurveyLine("line_03")
	fresh.TraceNum = []int{1, 2, 3}
	fresh.RepairTraceNums()
	if err := loaded.Restore(fresh); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	got, ok := fresh.DepthLine(survey.LineTypeCurrentSurface, "picked")
	if !ok {
		t.Fatal("depth line lost in round trip")
	}
	if got.Source != survey.SourceAlgorithm || got.SourceName != "Current Surface Threshold Algorithm" {
		t.Errorf("provenance %v/%q", got.Source, got.SourceName)
	}
	if d := got.DepthArray(); len(d) != 3 || d[1] != 2.1 {
		t.Errorf("depths %v", d)
	}
	if fresh.FinalLakeDepth() != "picked" {
		t.Errorf("final selection %q", fresh.FinalLakeDepth())
	}
	if fresh.Status != survey.StatusApproved {
		t.Errorf("status %v", fresh.Status)
	}
}

func TestRestoreUnknownLineIsNoOp(t *testing.T) {
	proj := New("empty", "")
	line := survey.NewSurveyLine("line_99")
	if err := proj.Restore(line); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if names := line.DepthLineNames(survey.LineTypeCurrentSurface); len(names) != 0 {
		t.Errorf("phantom depth lines %v", names)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.sonarproj")); err == nil {
		t.Fatal("missing file loaded")
	}
}
