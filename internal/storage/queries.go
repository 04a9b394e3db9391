package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/nicoh/go-goal-value/internal/model"
)

// ReplaceGoalValues swaps the whole lookup table in one transaction: every
// existing bucket row is deleted, then one row per populated bucket is
// inserted. An empty table is a valid reset. A failure anywhere rolls the
// old table back into place.
func (db *DB) ReplaceGoalValues(table model.ValueTable) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM goal_value_buckets"); err != nil {
		return fmt.Errorf("clear goal_value_buckets: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO goal_value_buckets(minute, score_diff, value)
		VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	minutes := make([]int, 0, len(table))
	for m := range table {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)
	for _, minute := range minutes {
		row := table[minute]
		diffs := make([]int, 0, len(row))
		for d := range row {
			diffs = append(diffs, d)
		}
		sort.Ints(diffs)
		for _, diff := range diffs {
			if _, err := stmt.Exec(minute, diff, row[diff]); err != nil {
				return fmt.Errorf("insert bucket (%d,%d): %w", minute, diff, err)
			}
		}
	}
	return tx.Commit()
}

// LoadGoalValues returns the persisted lookup table as a sparse structure.
// Buckets with no row are simply absent.
func (db *DB) LoadGoalValues() (model.ValueTable, error) {
	rows, err := db.conn.Query("SELECT minute, score_diff, value FROM goal_value_buckets")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := make(model.ValueTable)
	for rows.Next() {
		var minute, diff int
		var value float64
		if err := rows.Scan(&minute, &diff, &value); err != nil {
			return nil, err
		}
		table.Set(minute, diff, value)
	}
	return table, rows.Err()
}

// InsertRunMetadata appends one audit record for a completed run. Prior runs
// are never updated or deleted.
func (db *DB) InsertRunMetadata(meta model.RunMetadata) error {
	_, err := db.conn.Exec(`
		INSERT INTO engine_runs(id, created_at, total_goals, version)
		VALUES (?, ?, ?, ?)`,
		meta.ID, meta.CreatedAt.UTC().Format(time.RFC3339), meta.TotalGoals, meta.Version,
	)
	if err != nil {
		return fmt.Errorf("insert engine_runs: %w", err)
	}
	return nil
}

// ListRuns returns the run history, newest first.
func (db *DB) ListRuns() ([]model.RunMetadata, error) {
	rows, err := db.conn.Query(`
		SELECT id, created_at, total_goals, version
		FROM engine_runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RunMetadata
	for rows.Next() {
		var m model.RunMetadata
		var created string
		if err := rows.Scan(&m.ID, &created, &m.TotalGoals, &m.Version); err != nil {
			return nil, err
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, m)
	}
	return out, rows.Err()
}

const goalEventColumns = `
	id, match_id, season, player_id, team_id, opponent_id,
	minute, kind, score_for_pre, score_against_pre,
	final_for, final_against, goal_value`

func scanGoalEvent(rows interface{ Scan(...any) error }) (model.GoalEvent, error) {
	var ev model.GoalEvent
	var kind string
	err := rows.Scan(
		&ev.ID, &ev.MatchID, &ev.Season, &ev.PlayerID, &ev.TeamID, &ev.OpponentID,
		&ev.Minute, &kind, &ev.ScoreForPre, &ev.ScoreAgainstPre,
		&ev.FinalFor, &ev.FinalAgainst, &ev.GoalValue,
	)
	if err != nil {
		return model.GoalEvent{}, err
	}
	ev.Kind = model.ParseEventKind(kind)
	return ev, nil
}

// ListGoalEvents returns every goal and own-goal event ordered by id.
func (db *DB) ListGoalEvents() ([]model.GoalEvent, error) {
	rows, err := db.conn.Query(`
		SELECT ` + goalEventColumns + `
		FROM goal_events WHERE kind IN ('goal', 'own_goal') ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GoalEvent
	for rows.Next() {
		ev, err := scanGoalEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// ListGoalEventsInBucket returns the events whose (minute, clamped
// benefit-side differential) lands in the given bucket, for manual auditing.
// The differential is computed in SQL the same way the estimator computes it,
// with the own-goal perspective flip.
func (db *DB) ListGoalEventsInBucket(minute, scoreDiff int) ([]model.GoalEvent, error) {
	rows, err := db.conn.Query(`
		SELECT `+goalEventColumns+`
		FROM goal_events
		WHERE kind IN ('goal', 'own_goal')
		  AND minute = ?
		  AND MAX(-5, MIN(5, CASE kind
				WHEN 'own_goal' THEN score_against_pre - score_for_pre
				ELSE score_for_pre - score_against_pre
			END)) = ?
		ORDER BY id`, minute, scoreDiff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GoalEvent
	for rows.Next() {
		ev, err := scanGoalEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// UpdateEventGoalValues writes the propagated goal_value column for the given
// event ids in one transaction. A nil value clears the column to NULL.
func (db *DB) UpdateEventGoalValues(values map[int64]*float64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE goal_events SET goal_value = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, err := stmt.Exec(values[id], id); err != nil {
			return fmt.Errorf("update goal_value for event %d: %w", id, err)
		}
	}
	return tx.Commit()
}

// UpsertPlayerSeasonValues writes the derived goal_value/gv_avg columns for
// each (player, season, team) row in one transaction. Rows absent from the
// stats table are created with the derived columns only.
func (db *DB) UpsertPlayerSeasonValues(rows []model.PlayerSeasonStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO player_season_stats(player_id, season, team_id, goals, goal_value, gv_avg)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id, season, team_id)
		DO UPDATE SET goal_value = excluded.goal_value, gv_avg = excluded.gv_avg`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.PlayerID, r.Season, r.TeamID, r.Goals, r.GoalValue, r.GoalValueAvg); err != nil {
			return fmt.Errorf("upsert player_season_stats %d/%s/%d: %w", r.PlayerID, r.Season, r.TeamID, err)
		}
	}
	return tx.Commit()
}

// UpsertTeamSeasonValues is the team-level analogue of UpsertPlayerSeasonValues.
func (db *DB) UpsertTeamSeasonValues(rows []model.TeamSeasonStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO team_season_stats(team_id, season, goals, goal_value, gv_avg)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(team_id, season)
		DO UPDATE SET goal_value = excluded.goal_value, gv_avg = excluded.gv_avg`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.TeamID, r.Season, r.Goals, r.GoalValue, r.GoalValueAvg); err != nil {
			return fmt.Errorf("upsert team_season_stats %d/%s: %w", r.TeamID, r.Season, err)
		}
	}
	return tx.Commit()
}

// GetPlayerSeasonStats returns all player-season rows ordered by player, season, team.
func (db *DB) GetPlayerSeasonStats() ([]model.PlayerSeasonStats, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, season, team_id, goals, goal_value, gv_avg
		FROM player_season_stats ORDER BY player_id, season, team_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerSeasonStats
	for rows.Next() {
		var r model.PlayerSeasonStats
		if err := rows.Scan(&r.PlayerID, &r.Season, &r.TeamID, &r.Goals, &r.GoalValue, &r.GoalValueAvg); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetTeamSeasonStats returns all team-season rows ordered by team, season.
func (db *DB) GetTeamSeasonStats() ([]model.TeamSeasonStats, error) {
	rows, err := db.conn.Query(`
		SELECT team_id, season, goals, goal_value, gv_avg
		FROM team_season_stats ORDER BY team_id, season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TeamSeasonStats
	for rows.Next() {
		var r model.TeamSeasonStats
		if err := rows.Scan(&r.TeamID, &r.Season, &r.Goals, &r.GoalValue, &r.GoalValueAvg); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertGoalEvents bulk-inserts events in a transaction. Used by the ingest
// boundary and test fixtures; INSERT OR REPLACE keeps re-ingestion idempotent.
func (db *DB) InsertGoalEvents(events []model.GoalEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO goal_events(
			id, match_id, season, player_id, team_id, opponent_id,
			minute, kind, score_for_pre, score_against_pre,
			final_for, final_against, goal_value
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err = stmt.Exec(
			ev.ID, ev.MatchID, ev.Season, ev.PlayerID, ev.TeamID, ev.OpponentID,
			ev.Minute, ev.Kind.String(), ev.ScoreForPre, ev.ScoreAgainstPre,
			ev.FinalFor, ev.FinalAgainst, ev.GoalValue,
		)
		if err != nil {
			return fmt.Errorf("insert goal_events %d: %w", ev.ID, err)
		}
	}
	return tx.Commit()
}
