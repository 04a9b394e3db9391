package engine

import (
	"sort"

	"github.com/nicoh/go-goal-value/internal/model"
)

// RawBucket is one unsmoothed cell: how many qualifying goals landed in it
// and how many of those the benefiting team converted into a better-or-equal
// final result.
type RawBucket struct {
	Secured      int
	Observations int
}

// Value is the empirical share of secured outcomes for this bucket.
func (b RawBucket) Value() float64 {
	if b.Observations == 0 {
		return 0
	}
	return float64(b.Secured) / float64(b.Observations)
}

// RawTable maps minute → score_diff → RawBucket. Buckets with zero
// observations are absent, never present with a zero value: smoothing relies
// on that distinction.
type RawTable map[int]map[int]RawBucket

// Bucket returns the raw cell for (minute, diff) and whether it exists.
func (t RawTable) Bucket(minute, diff int) (RawBucket, bool) {
	row, ok := t[minute]
	if !ok {
		return RawBucket{}, false
	}
	b, ok := row[diff]
	return b, ok
}

// TotalObservations sums observation counts over all buckets.
func (t RawTable) TotalObservations() int {
	n := 0
	for _, row := range t {
		for _, b := range row {
			n += b.Observations
		}
	}
	return n
}

// Minutes returns the populated minutes in ascending order.
func (t RawTable) Minutes() []int {
	out := make([]int, 0, len(t))
	for m := range t {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

// Estimate scans all qualifying goal events and derives one raw bucket per
// (minute, clamped benefit-side differential). Pure and deterministic over
// the event snapshot; an empty snapshot yields an empty table, which
// downstream stages treat as "no data yet".
func Estimate(events []model.GoalEvent, judge OutcomeJudge) RawTable {
	table := make(RawTable)
	for _, ev := range events {
		if !Qualifies(ev) {
			continue
		}
		diff := ClampScoreDiff(BenefitDiff(ev))
		row, ok := table[ev.Minute]
		if !ok {
			row = make(map[int]RawBucket)
			table[ev.Minute] = row
		}
		b := row[diff]
		b.Observations++
		if judge.Secured(ev) {
			b.Secured++
		}
		row[diff] = b
	}
	return table
}
