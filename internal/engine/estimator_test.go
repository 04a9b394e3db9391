package engine

import (
	"testing"

	"github.com/nicoh/go-goal-value/internal/model"
)

// makeGoal builds a qualifying goal event at the given minute with the given
// pre-goal and final scores, scorer's perspective.
func makeGoal(id int64, minute, preFor, preAg, finFor, finAg int) model.GoalEvent {
	return model.GoalEvent{
		ID:              id,
		MatchID:         id,
		Season:          "2024-25",
		PlayerID:        1,
		TeamID:          10,
		OpponentID:      20,
		Minute:          minute,
		Kind:            model.KindGoal,
		ScoreForPre:     preFor,
		ScoreAgainstPre: preAg,
		FinalFor:        finFor,
		FinalAgainst:    finAg,
	}
}

func TestEstimate_HalfSecured(t *testing.T) {
	// Two goals at minute 45 with diff +1: one team held on to win, one
	// collapsed to a loss. Raw value must be exactly 0.5.
	events := []model.GoalEvent{
		makeGoal(1, 45, 1, 0, 3, 0),
		makeGoal(2, 45, 1, 0, 2, 3),
	}
	raw := Estimate(events, FinalResultJudge{})

	b, ok := raw.Bucket(45, 1)
	if !ok {
		t.Fatal("bucket (45,1) missing")
	}
	if b.Observations != 2 || b.Secured != 1 {
		t.Errorf("bucket (45,1): want 1/2, got %d/%d", b.Secured, b.Observations)
	}
	if b.Value() != 0.5 {
		t.Errorf("bucket (45,1) value: want 0.5, got %f", b.Value())
	}
}

func TestEstimate_EmptyInput(t *testing.T) {
	raw := Estimate(nil, FinalResultJudge{})
	if len(raw) != 0 {
		t.Errorf("empty event set: want empty table, got %d minutes", len(raw))
	}
	if raw.TotalObservations() != 0 {
		t.Errorf("want 0 observations, got %d", raw.TotalObservations())
	}
}

func TestEstimate_ZeroObservationBucketsAbsent(t *testing.T) {
	events := []model.GoalEvent{makeGoal(1, 10, 0, 0, 1, 0)}
	raw := Estimate(events, FinalResultJudge{})

	if _, ok := raw.Bucket(10, 0); !ok {
		t.Error("bucket (10,0) should be present")
	}
	if _, ok := raw.Bucket(10, 1); ok {
		t.Error("bucket (10,1) must be absent, not zero")
	}
	if _, ok := raw.Bucket(11, 0); ok {
		t.Error("bucket (11,0) must be absent, not zero")
	}
}

func TestEstimate_ClampsExtremeDiffs(t *testing.T) {
	// 8-0 before the goal folds onto the +5 boundary bucket.
	events := []model.GoalEvent{makeGoal(1, 60, 8, 0, 9, 0)}
	raw := Estimate(events, FinalResultJudge{})

	b, ok := raw.Bucket(60, MaxScoreDiff)
	if !ok {
		t.Fatal("blowout goal should land in the boundary bucket")
	}
	if b.Observations != 1 {
		t.Errorf("boundary bucket observations: want 1, got %d", b.Observations)
	}
}

func TestEstimate_OwnGoalPerspective(t *testing.T) {
	// Own-goal while the scorer's team trailed 0-1: the benefiting side was
	// leading, so the observation lands in diff +1, and the 3-1 final loss
	// (a win for the benefiting side) is secured.
	og := model.GoalEvent{
		ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 2, TeamID: 10, OpponentID: 20,
		Minute: 30, Kind: model.KindOwnGoal,
		ScoreForPre: 0, ScoreAgainstPre: 1,
		FinalFor: 1, FinalAgainst: 3,
	}
	raw := Estimate([]model.GoalEvent{og}, FinalResultJudge{})

	b, ok := raw.Bucket(30, 1)
	if !ok {
		t.Fatal("own-goal should bucket from the benefiting side: (30,+1)")
	}
	if b.Secured != 1 {
		t.Errorf("benefiting side won: want secured=1, got %d", b.Secured)
	}
	if _, ok := raw.Bucket(30, -1); ok {
		t.Error("own-goal must not also bucket from the scorer's perspective")
	}
}

func TestEstimate_FiltersNonQualifyingKinds(t *testing.T) {
	events := []model.GoalEvent{
		makeGoal(1, 45, 0, 0, 1, 0),
		{ID: 2, Minute: 45, Kind: model.KindUnknown},
	}
	raw := Estimate(events, FinalResultJudge{})
	if raw.TotalObservations() != 1 {
		t.Errorf("unknown kinds must be filtered: want 1 observation, got %d", raw.TotalObservations())
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	events := []model.GoalEvent{
		makeGoal(1, 45, 1, 0, 3, 0),
		makeGoal(2, 45, 1, 0, 2, 3),
		makeGoal(3, 90, 0, 0, 1, 0),
		makeGoal(4, 12, 0, 2, 1, 4),
	}
	a := Estimate(events, FinalResultJudge{})
	b := Estimate(events, FinalResultJudge{})

	if len(a) != len(b) || a.TotalObservations() != b.TotalObservations() {
		t.Fatal("two estimates over the same snapshot differ")
	}
	for _, m := range a.Minutes() {
		for diff, bucket := range a[m] {
			other, ok := b.Bucket(m, diff)
			if !ok || other != bucket {
				t.Errorf("bucket (%d,%d) differs between runs: %+v vs %+v", m, diff, bucket, other)
			}
		}
	}
}
