package engine

import "sort"

// SampleReport summarizes how many raw observations fed the estimator, per
// minute and per score differential. It exists to judge whether the smoothing
// window is wide enough for the sparse corners of the table.
type SampleReport struct {
	ByMinute map[int]int
	ByDiff   map[int]int
	ByBucket map[int]map[int]int
	Total    int
}

// SampleSizes builds a SampleReport from a raw table. Read-only.
func SampleSizes(raw RawTable) SampleReport {
	rep := SampleReport{
		ByMinute: make(map[int]int),
		ByDiff:   make(map[int]int),
		ByBucket: make(map[int]map[int]int),
	}
	for minute, row := range raw {
		for diff, b := range row {
			rep.ByMinute[minute] += b.Observations
			rep.ByDiff[diff] += b.Observations
			if rep.ByBucket[minute] == nil {
				rep.ByBucket[minute] = make(map[int]int)
			}
			rep.ByBucket[minute][diff] = b.Observations
			rep.Total += b.Observations
		}
	}
	return rep
}

// WindowObservations returns how many observations a smoothing window of the
// given size would pool for one target bucket. Mirrors the truncation rules
// in Smooth.
func WindowObservations(raw RawTable, minute, diff, windowSize int) int {
	windowSize = NormalizeWindow(windowSize)
	half := windowSize / 2
	lo := minute - half
	if lo < MinMinute {
		lo = MinMinute
	}
	hi := minute + half
	if hi > MaxMinute {
		hi = MaxMinute
	}
	n := 0
	for m := lo; m <= hi; m++ {
		if b, ok := raw.Bucket(m, ClampScoreDiff(diff)); ok {
			n += b.Observations
		}
	}
	return n
}

// SortedKeys returns the keys of an int-keyed count map in ascending order.
func SortedKeys(m map[int]int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
