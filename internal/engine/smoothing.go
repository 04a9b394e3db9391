package engine

import "github.com/nicoh/go-goal-value/internal/model"

// DefaultWindowSize is the default smoothing window in minutes.
const DefaultWindowSize = 5

// NormalizeWindow coerces a window size into a valid odd width. Even values
// are bumped up to the next odd one so the window stays centered; anything
// below 1 becomes 1 (no smoothing).
func NormalizeWindow(size int) int {
	if size < 1 {
		return 1
	}
	if size%2 == 0 {
		return size + 1
	}
	return size
}

// Smooth turns the sparse raw table into the final lookup table by taking an
// observation-weighted moving average along the minute axis, per score
// differential. Windows are truncated at the minute boundaries rather than
// wrapped or padded. A bucket whose whole window holds zero observations is
// omitted from the output: "no data" must stay distinguishable from a real
// zero all the way down to the persisted column.
func Smooth(raw RawTable, windowSize int) model.ValueTable {
	windowSize = NormalizeWindow(windowSize)
	half := windowSize / 2

	out := make(model.ValueTable)
	for minute := MinMinute; minute <= MaxMinute; minute++ {
		lo := minute - half
		if lo < MinMinute {
			lo = MinMinute
		}
		hi := minute + half
		if hi > MaxMinute {
			hi = MaxMinute
		}
		for diff := MinScoreDiff; diff <= MaxScoreDiff; diff++ {
			secured, observations := 0, 0
			for m := lo; m <= hi; m++ {
				b, ok := raw.Bucket(m, diff)
				if !ok {
					continue
				}
				secured += b.Secured
				observations += b.Observations
			}
			if observations == 0 {
				continue
			}
			out.Set(minute, diff, float64(secured)/float64(observations))
		}
	}
	return out
}
