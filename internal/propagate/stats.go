package propagate

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/model"
	"github.com/nicoh/go-goal-value/internal/storage"
)

// valueAccum sums the propagated values of one grouping. valued counts the
// events that actually carried a value; goals counts all qualifying events
// and is the averaging denominator.
type valueAccum struct {
	sum    float64
	valued int
	goals  int
}

func (a valueAccum) fields() (total, avg *float64) {
	if a.valued == 0 || a.goals == 0 {
		return nil, nil
	}
	t := a.sum
	av := a.sum / float64(a.goals)
	return &t, &av
}

// PlayerStats recomputes the goal_value/gv_avg columns on every
// (player, season, team) summary row from the event values the Events pass
// just wrote. Must run strictly after Events. Groupings with no valued
// events get NULL for both columns. Own-goals never credit the scorer, so
// only proper goals feed the player summaries.
func PlayerStats(db *storage.DB, log *zap.Logger) (int, error) {
	events, err := db.ListGoalEvents()
	if err != nil {
		return 0, fmt.Errorf("list goal events: %w", err)
	}

	type key struct {
		playerID int64
		season   string
		teamID   int64
	}
	accums := make(map[key]valueAccum)
	for _, ev := range events {
		if ev.Kind != model.KindGoal {
			continue
		}
		k := key{ev.PlayerID, ev.Season, ev.TeamID}
		a := accums[k]
		a.goals++
		if ev.GoalValue != nil {
			a.sum += *ev.GoalValue
			a.valued++
		}
		accums[k] = a
	}

	keys := make([]key, 0, len(accums))
	for k := range accums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.playerID != b.playerID {
			return a.playerID < b.playerID
		}
		if a.season != b.season {
			return a.season < b.season
		}
		return a.teamID < b.teamID
	})

	rows := make([]model.PlayerSeasonStats, 0, len(keys))
	for _, k := range keys {
		a := accums[k]
		total, avg := a.fields()
		rows = append(rows, model.PlayerSeasonStats{
			PlayerID:     k.playerID,
			Season:       k.season,
			TeamID:       k.teamID,
			Goals:        a.goals,
			GoalValue:    total,
			GoalValueAvg: avg,
		})
	}

	if err := db.UpsertPlayerSeasonValues(rows); err != nil {
		return 0, fmt.Errorf("upsert player season values: %w", err)
	}
	log.Info("propagated season values onto player stats", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// TeamStats is the team-level analogue of PlayerStats. Own-goals benefit the
// opponent, so they accrue to the opponent's season total.
func TeamStats(db *storage.DB, log *zap.Logger) (int, error) {
	events, err := db.ListGoalEvents()
	if err != nil {
		return 0, fmt.Errorf("list goal events: %w", err)
	}

	type key struct {
		teamID int64
		season string
	}
	accums := make(map[key]valueAccum)
	for _, ev := range events {
		if !engine.Qualifies(ev) {
			continue
		}
		teamID := ev.TeamID
		if ev.Kind == model.KindOwnGoal {
			teamID = ev.OpponentID
		}
		k := key{teamID, ev.Season}
		a := accums[k]
		a.goals++
		if ev.GoalValue != nil {
			a.sum += *ev.GoalValue
			a.valued++
		}
		accums[k] = a
	}

	keys := make([]key, 0, len(accums))
	for k := range accums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.teamID != b.teamID {
			return a.teamID < b.teamID
		}
		return a.season < b.season
	})

	rows := make([]model.TeamSeasonStats, 0, len(keys))
	for _, k := range keys {
		a := accums[k]
		total, avg := a.fields()
		rows = append(rows, model.TeamSeasonStats{
			TeamID:       k.teamID,
			Season:       k.season,
			Goals:        a.goals,
			GoalValue:    total,
			GoalValueAvg: avg,
		})
	}

	if err := db.UpsertTeamSeasonValues(rows); err != nil {
		return 0, fmt.Errorf("upsert team season values: %w", err)
	}
	log.Info("propagated season values onto team stats", zap.Int("rows", len(rows)))
	return len(rows), nil
}
