package survey

import (
	"errors"
	"testing"
)

func newTestRecord() *SurveyLine {
	line := NewSurveyLine("line_07")
	line.TraceNum = []int{1, 2, 3, 4}
	line.RepairTraceNums()
	return line
}

func TestAddDepthLineRoutesByType(t *testing.T) {
	line := newTestRecord()

	cur := NewDepthLine("a", LineTypeCurrentSurface, SourceManual, []int{0}, []float64{1})
	pre := NewDepthLine("a", LineTypePreImpoundment, SourceManual, []int{0}, []float64{2})
	if err := line.AddDepthLine(cur); err != nil {
		t.Fatalf("AddDepthLine current: %v", err)
	}
	if err := line.AddDepthLine(pre); err != nil {
		t.Fatalf("AddDepthLine preimpoundment: %v", err)
	}

	if _, ok := line.DepthLine(LineTypeCurrentSurface, "a"); !ok {
		t.Error("current-surface line not in lake depths")
	}
	if _, ok := line.DepthLine(LineTypePreImpoundment, "a"); !ok {
		t.Error("pre-impoundment line not in preimpoundment depths")
	}
	if got, _ := line.DepthLine(LineTypeCurrentSurface, "a"); got.DepthArray()[0] != 1 {
		t.Error("type routing mixed up the two dictionaries")
	}
	if cur.SurveyLineName != "line_07" {
		t.Errorf("back-reference %q not set", cur.SurveyLineName)
	}
}

func TestAddDepthLineLockedNameCollision(t *testing.T) {
	line := newTestRecord()
	first := NewDepthLine("keep", LineTypeCurrentSurface, SourceManual, []int{0}, []float64{1})
	first.Lock()
	if err := line.AddDepthLine(first); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}

	replacement := NewDepthLine("keep", LineTypeCurrentSurface, SourceManual, []int{0}, []float64{9})
	if err := line.AddDepthLine(replacement); !errors.Is(err, ErrLocked) {
		t.Fatalf("error %v, want ErrLocked", err)
	}
	got, _ := line.DepthLine(LineTypeCurrentSurface, "keep")
	if got.DepthArray()[0] != 1 {
		t.Error("locked line was replaced")
	}
}

func TestAddDepthLineOverwritesUnlocked(t *testing.T) {
	line := newTestRecord()
	if err := line.AddDepthLine(NewDepthLine("v", LineTypeCurrentSurface, SourceManual, []int{0}, []float64{1})); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}
	if err := line.AddDepthLine(NewDepthLine("v", LineTypeCurrentSurface, SourceManual, []int{0}, []float64{2})); err != nil {
		t.Fatalf("overwrite of unlocked line refused: %v", err)
	}
	got, _ := line.DepthLine(LineTypeCurrentSurface, "v")
	if got.DepthArray()[0] != 2 {
		t.Error("overwrite did not stick")
	}
}

func TestFinalSelectionMustExist(t *testing.T) {
	line := newTestRecord()
	if err := line.SetFinalLakeDepth("ghost"); err == nil {
		t.Fatal("final selection accepted a missing name")
	}

	dl := NewDepthLine("real", LineTypeCurrentSurface, SourceManual, []int{0}, []float64{1})
	if err := line.AddDepthLine(dl); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}
	if err := line.SetFinalLakeDepth("real"); err != nil {
		t.Fatalf("SetFinalLakeDepth: %v", err)
	}
	if line.FinalLakeDepth() != "real" {
		t.Errorf("final selection %q", line.FinalLakeDepth())
	}

	// Clearing is always allowed.
	if err := line.SetFinalLakeDepth(""); err != nil {
		t.Fatalf("clear final: %v", err)
	}
}

func TestRemoveDepthLineClearsFinal(t *testing.T) {
	line := newTestRecord()
	dl := NewDepthLine("pick", LineTypePreImpoundment, SourceManual, []int{0}, []float64{1})
	if err := line.AddDepthLine(dl); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}
	if err := line.SetFinalPreimpoundment("pick"); err != nil {
		t.Fatalf("SetFinalPreimpoundment: %v", err)
	}
	if err := line.RemoveDepthLine(LineTypePreImpoundment, "pick"); err != nil {
		t.Fatalf("RemoveDepthLine: %v", err)
	}
	if line.FinalPreimpoundment() != "" {
		t.Errorf("final selection %q survived removal", line.FinalPreimpoundment())
	}
}

func TestRemoveDepthLineLocked(t *testing.T) {
	line := newTestRecord()
	dl := NewSDILine("bin", "lake.bin", LineTypeCurrentSurface, []int{0}, []float64{1})
	if err := line.AddDepthLine(dl); err != nil {
		t.Fatalf("AddDepthLine: %v", err)
	}
	if err := line.RemoveDepthLine(LineTypeCurrentSurface, "bin"); !errors.Is(err, ErrLocked) {
		t.Fatalf("error %v, want ErrLocked", err)
	}
}

func TestSetMaskLength(t *testing.T) {
	line := newTestRecord()
	if err := line.SetMask([]bool{true, false}); err == nil {
		t.Fatal("short mask accepted")
	}
	if err := line.SetMask([]bool{true, false, true, false}); err != nil {
		t.Fatalf("SetMask: %v", err)
	}
	mask := line.Mask()
	if len(mask) != 4 || !mask[0] || mask[1] {
		t.Errorf("mask %v", mask)
	}
}

func TestArraySizesOK(t *testing.T) {
	line := newTestRecord()
	line.Heave = []float64{0, 0, 0, 0}
	if !line.ArraySizesOK() {
		t.Fatal("matching arrays flagged")
	}

	line.Power = []float64{1, 2}
	if line.ArraySizesOK() {
		t.Fatal("mismatched power array not flagged")
	}
	if line.StatusString == "" {
		t.Error("mismatch did not set the record flag")
	}
}
