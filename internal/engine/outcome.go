package engine

import "github.com/nicoh/go-goal-value/internal/model"

// OutcomeJudge decides whether the team a goal benefited went on to secure a
// final result at least as good as the state the pre-goal differential
// implied. It is the ground-truth signal behind the raw bucket values; kept
// behind an interface so the definition can change without touching
// smoothing, persistence, or propagation.
type OutcomeJudge interface {
	Secured(ev model.GoalEvent) bool
}

// FinalResultJudge compares the full-time result against the match state at
// the moment of the goal: leading implies a win, level implies a draw,
// trailing implies a loss. "Secured" means the final result ranks at least as
// high as the implied one.
type FinalResultJudge struct{}

func resultRank(forGoals, againstGoals int) int {
	switch {
	case forGoals > againstGoals:
		return 2
	case forGoals == againstGoals:
		return 1
	default:
		return 0
	}
}

func impliedRank(diff int) int {
	switch {
	case diff > 0:
		return 2
	case diff == 0:
		return 1
	default:
		return 0
	}
}

// Secured implements OutcomeJudge from the benefiting side's perspective.
func (FinalResultJudge) Secured(ev model.GoalEvent) bool {
	finalFor, finalAgainst := ev.FinalFor, ev.FinalAgainst
	if ev.Kind == model.KindOwnGoal {
		finalFor, finalAgainst = ev.FinalAgainst, ev.FinalFor
	}
	return resultRank(finalFor, finalAgainst) >= impliedRank(BenefitDiff(ev))
}
