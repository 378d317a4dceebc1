package survey

import (
	"log"
	"sort"
)

// CheckTraceNums reports positions where a trace-number array deviates from
// the expected contiguous 1..N numbering. Instrument files sometimes emit
// skipped or duplicated trace numbers; those are returned as indices plus
// the offending values. This never fails: problems are logged as warnings
// and handed to FixTraceNums.
func CheckTraceNums(traceNum []int, lineName string) (badIdx, badVals []int) {
	for i, v := range traceNum {
		if v != i+1 {
			badIdx = append(badIdx, i)
			badVals = append(badVals, v)
		}
	}
	if len(badIdx) > 0 {
		log.Printf("survey line %s: trace_num not contiguous: values %v at indices %v",
			lineName, badVals, badIdx)
	}
	return badIdx, badVals
}

// FixTraceNums rewrites bad trace numbers to their canonical sequential
// values. For every frequency sub-array, the positions that correspond to
// bad global indices are overwritten with index+1; the master array is then
// replaced wholesale with 1..N. Running it on an already-repaired line is a
// no-op.
//
// The returned freqTraceNum shares no storage with the input.
func FixTraceNums(traceNum []int, badIdx []int, freqTraceNum map[string][]int) ([]int, map[string][]int) {
	badSet := make(map[int]bool, len(badIdx))
	for _, i := range badIdx {
		badSet[i] = true
	}

	present := make(map[int]bool, len(traceNum))
	fixedFreq := make(map[string][]int, len(freqTraceNum))
	for freq, traceArray := range freqTraceNum {
		// Positions in the master array whose value appears in this
		// frequency's sub-array.
		for k := range present {
			delete(present, k)
		}
		for _, v := range traceArray {
			present[v] = true
		}
		var indicesInFreq []int
		for i, v := range traceNum {
			if present[v] {
				indicesInFreq = append(indicesInFreq, i)
			}
		}

		fixed := append([]int(nil), traceArray...)
		for _, i := range badIdx {
			if !contains(indicesInFreq, i) {
				continue
			}
			// The slot in the sub-array where this global index lands.
			pos := sort.SearchInts(indicesInFreq, i)
			if pos < len(fixed) {
				fixed[pos] = i + 1
			}
		}
		fixedFreq[freq] = fixed
	}

	fixedTrace := make([]int, len(traceNum))
	for i := range fixedTrace {
		fixedTrace[i] = i + 1
	}
	return fixedTrace, fixedFreq
}

func contains(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

// RepairTraceNums checks and repairs the record's trace numbering in place.
// It must run once after raw load, before any algorithm reads FreqTraceNum.
// Repeat calls are harmless.
func (sl *SurveyLine) RepairTraceNums() {
	badIdx, _ := CheckTraceNums(sl.TraceNum, sl.Name)
	if sl.repaired && len(badIdx) == 0 {
		return
	}
	sl.TraceNum, sl.FreqTraceNum = FixTraceNums(sl.TraceNum, badIdx, sl.FreqTraceNum)
	sl.repaired = true
}
