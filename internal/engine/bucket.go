package engine

import "github.com/nicoh/go-goal-value/internal/model"

// Domain of the lookup table. Minutes cover regulation plus extra and
// stoppage time; score differentials beyond ±5 are folded onto the boundary
// because sample sizes out there are negligible.
const (
	MinMinute = 0
	MaxMinute = 120

	MinScoreDiff = -5
	MaxScoreDiff = 5
)

// ClampScoreDiff folds an arbitrary differential into the table domain.
// Total and idempotent.
func ClampScoreDiff(d int) int {
	if d < MinScoreDiff {
		return MinScoreDiff
	}
	if d > MaxScoreDiff {
		return MaxScoreDiff
	}
	return d
}

// BenefitDiff returns the pre-goal score differential from the perspective of
// the team the goal benefits. For an own-goal that is the conceding side's
// opponent, so the stored scorer-relative scores are flipped.
func BenefitDiff(ev model.GoalEvent) int {
	if ev.Kind == model.KindOwnGoal {
		return ev.ScoreAgainstPre - ev.ScoreForPre
	}
	return ev.ScoreForPre - ev.ScoreAgainstPre
}

// Qualifies reports whether the event kind is routed into the pipeline.
func Qualifies(ev model.GoalEvent) bool {
	return ev.Kind == model.KindGoal || ev.Kind == model.KindOwnGoal
}
