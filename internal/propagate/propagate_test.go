package propagate

import (
	"testing"

	"go.uber.org/zap"

	"github.com/nicoh/go-goal-value/internal/model"
	"github.com/nicoh/go-goal-value/internal/storage"
)

func openMemDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *storage.DB, events []model.GoalEvent) {
	t.Helper()
	if err := db.InsertGoalEvents(events); err != nil {
		t.Fatalf("InsertGoalEvents: %v", err)
	}
}

func eventByID(t *testing.T, db *storage.DB, id int64) model.GoalEvent {
	t.Helper()
	events, err := db.ListGoalEvents()
	if err != nil {
		t.Fatalf("ListGoalEvents: %v", err)
	}
	for _, ev := range events {
		if ev.ID == id {
			return ev
		}
	}
	t.Fatalf("event %d not found", id)
	return model.GoalEvent{}
}

func TestEvents_HitAndMiss(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, []model.GoalEvent{
		// (45, +1): present in the table.
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 1, TeamID: 10, OpponentID: 20,
			Minute: 45, Kind: model.KindGoal, ScoreForPre: 1, ScoreAgainstPre: 0, FinalFor: 2, FinalAgainst: 0},
		// (45, +2): no bucket — must end up NULL, not 0.
		{ID: 2, MatchID: 2, Season: "2024-25", PlayerID: 2, TeamID: 10, OpponentID: 20,
			Minute: 45, Kind: model.KindGoal, ScoreForPre: 2, ScoreAgainstPre: 0, FinalFor: 3, FinalAgainst: 0},
	})

	table := make(model.ValueTable)
	table.Set(45, 1, 0.75)
	table.Set(45, 0, 0.5)

	res, err := Events(db, table, zap.NewNop())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if res.Updated != 1 || res.Cleared != 1 {
		t.Errorf("want 1 updated / 1 cleared, got %d / %d", res.Updated, res.Cleared)
	}

	hit := eventByID(t, db, 1)
	if hit.GoalValue == nil || *hit.GoalValue != 0.75 {
		t.Errorf("event 1: want goal_value 0.75, got %v", hit.GoalValue)
	}
	miss := eventByID(t, db, 2)
	if miss.GoalValue != nil {
		t.Errorf("event 2: want NULL goal_value for absent bucket, got %v", *miss.GoalValue)
	}
}

func TestEvents_OwnGoalLookupUsesBenefitSide(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, []model.GoalEvent{
		// Own-goal while the scorer trailed 0-1: benefit-side diff is +1.
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 1, TeamID: 10, OpponentID: 20,
			Minute: 30, Kind: model.KindOwnGoal, ScoreForPre: 0, ScoreAgainstPre: 1, FinalFor: 0, FinalAgainst: 2},
	})

	table := make(model.ValueTable)
	table.Set(30, 1, 0.6)

	if _, err := Events(db, table, zap.NewNop()); err != nil {
		t.Fatalf("Events: %v", err)
	}
	ev := eventByID(t, db, 1)
	if ev.GoalValue == nil || *ev.GoalValue != 0.6 {
		t.Errorf("own-goal should resolve via the benefiting side: got %v", ev.GoalValue)
	}
}

func TestEvents_StaleValueClearedOnReset(t *testing.T) {
	db := openMemDB(t)
	old := 0.9
	seed(t, db, []model.GoalEvent{
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 1, TeamID: 10, OpponentID: 20,
			Minute: 45, Kind: model.KindGoal, ScoreForPre: 1, ScoreAgainstPre: 0, FinalFor: 2, FinalAgainst: 0,
			GoalValue: &old},
	})

	// Propagating an empty table clears every stale value.
	if _, err := Events(db, make(model.ValueTable), zap.NewNop()); err != nil {
		t.Fatalf("Events: %v", err)
	}
	ev := eventByID(t, db, 1)
	if ev.GoalValue != nil {
		t.Errorf("stale value should be cleared, got %v", *ev.GoalValue)
	}
}

func TestPlayerStats_SumAndAverage(t *testing.T) {
	db := openMemDB(t)
	v1, v2 := 0.6, 0.4
	seed(t, db, []model.GoalEvent{
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 7, TeamID: 10, OpponentID: 20,
			Minute: 10, Kind: model.KindGoal, ScoreForPre: 0, ScoreAgainstPre: 0, FinalFor: 1, FinalAgainst: 0,
			GoalValue: &v1},
		{ID: 2, MatchID: 2, Season: "2024-25", PlayerID: 7, TeamID: 10, OpponentID: 20,
			Minute: 80, Kind: model.KindGoal, ScoreForPre: 1, ScoreAgainstPre: 1, FinalFor: 2, FinalAgainst: 1,
			GoalValue: &v2},
	})

	n, err := PlayerStats(db, zap.NewNop())
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 summary row, got %d", n)
	}

	rows, err := db.GetPlayerSeasonStats()
	if err != nil {
		t.Fatalf("GetPlayerSeasonStats: %v", err)
	}
	r := rows[0]
	if r.GoalValue == nil || *r.GoalValue != 1.0 {
		t.Errorf("total: want 1.0, got %v", r.GoalValue)
	}
	if r.GoalValueAvg == nil || *r.GoalValueAvg != 0.5 {
		t.Errorf("average: want total/goals = 0.5, got %v", r.GoalValueAvg)
	}
	if r.Goals != 2 {
		t.Errorf("goals: want 2, got %d", r.Goals)
	}
}

func TestPlayerStats_NullWhenNoValuedEvents(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, []model.GoalEvent{
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 7, TeamID: 10, OpponentID: 20,
			Minute: 10, Kind: model.KindGoal, ScoreForPre: 0, ScoreAgainstPre: 0, FinalFor: 1, FinalAgainst: 0},
	})

	if _, err := PlayerStats(db, zap.NewNop()); err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	rows, err := db.GetPlayerSeasonStats()
	if err != nil {
		t.Fatalf("GetPlayerSeasonStats: %v", err)
	}
	if rows[0].GoalValue != nil || rows[0].GoalValueAvg != nil {
		t.Error("no valued events: want NULL total and average, not 0")
	}
}

func TestPlayerStats_OwnGoalsExcluded(t *testing.T) {
	db := openMemDB(t)
	v := 0.3
	seed(t, db, []model.GoalEvent{
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 7, TeamID: 10, OpponentID: 20,
			Minute: 10, Kind: model.KindOwnGoal, ScoreForPre: 0, ScoreAgainstPre: 0, FinalFor: 0, FinalAgainst: 1,
			GoalValue: &v},
	})

	n, err := PlayerStats(db, zap.NewNop())
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if n != 0 {
		t.Errorf("own-goals never credit the scorer: want 0 rows, got %d", n)
	}
}

func TestTeamStats_OwnGoalAccruesToOpponent(t *testing.T) {
	db := openMemDB(t)
	v1, v2 := 0.5, 0.25
	seed(t, db, []model.GoalEvent{
		{ID: 1, MatchID: 1, Season: "2024-25", PlayerID: 1, TeamID: 10, OpponentID: 20,
			Minute: 10, Kind: model.KindGoal, ScoreForPre: 0, ScoreAgainstPre: 0, FinalFor: 2, FinalAgainst: 0,
			GoalValue: &v1},
		// Own-goal by team 10: benefits team 20.
		{ID: 2, MatchID: 1, Season: "2024-25", PlayerID: 2, TeamID: 10, OpponentID: 20,
			Minute: 50, Kind: model.KindOwnGoal, ScoreForPre: 2, ScoreAgainstPre: 0, FinalFor: 2, FinalAgainst: 1,
			GoalValue: &v2},
	})

	if _, err := TeamStats(db, zap.NewNop()); err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	rows, err := db.GetTeamSeasonStats()
	if err != nil {
		t.Fatalf("GetTeamSeasonStats: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want rows for teams 10 and 20, got %d", len(rows))
	}
	if rows[0].TeamID != 10 || rows[0].GoalValue == nil || *rows[0].GoalValue != 0.5 {
		t.Errorf("team 10: want 0.5, got %+v", rows[0])
	}
	if rows[1].TeamID != 20 || rows[1].GoalValue == nil || *rows[1].GoalValue != 0.25 {
		t.Errorf("team 20 (own-goal beneficiary): want 0.25, got %+v", rows[1])
	}
}
