package model

import "time"

// EventKind distinguishes the scoring event variants stored in the events
// table. Only goals and own-goals feed the value engine; anything else the
// ingestion side records (assists, cards) is filtered out, not dispatched.
type EventKind int

const (
	KindUnknown EventKind = 0
	KindGoal    EventKind = 1
	KindOwnGoal EventKind = 2
)

func (k EventKind) String() string {
	switch k {
	case KindGoal:
		return "goal"
	case KindOwnGoal:
		return "own_goal"
	default:
		return "?"
	}
}

// ParseEventKind maps a stored kind string back to an EventKind.
func ParseEventKind(s string) EventKind {
	switch s {
	case "goal":
		return KindGoal
	case "own_goal":
		return KindOwnGoal
	default:
		return KindUnknown
	}
}

// GoalEvent is one historical goal or own-goal occurrence. All scores are
// from the perspective of the scorer's team: ScoreForPre/ScoreAgainstPre at
// the instant before the goal, FinalFor/FinalAgainst at full time. The engine
// only ever writes the GoalValue column; everything else is owned by the
// match-ingestion side.
type GoalEvent struct {
	ID         int64
	MatchID    int64
	Season     string
	PlayerID   int64
	TeamID     int64
	OpponentID int64

	Minute int
	Kind   EventKind

	ScoreForPre     int
	ScoreAgainstPre int
	FinalFor        int
	FinalAgainst    int

	// GoalValue is nil when the lookup table has no bucket for this event
	// (insufficient historical data). Never defaulted to 0.
	GoalValue *float64
}

// BucketKey identifies one cell of the lookup table.
type BucketKey struct {
	Minute    int
	ScoreDiff int
}

// ValueTable is the sparse minute → score_diff → value lookup structure.
// Absent entries mean "no data", which is distinct from a stored value of 0.
type ValueTable map[int]map[int]float64

// Set stores a value for (minute, diff), allocating the inner map as needed.
func (t ValueTable) Set(minute, diff int, value float64) {
	row, ok := t[minute]
	if !ok {
		row = make(map[int]float64)
		t[minute] = row
	}
	row[diff] = value
}

// Get returns the value for (minute, diff) and whether it is present.
func (t ValueTable) Get(minute, diff int) (float64, bool) {
	row, ok := t[minute]
	if !ok {
		return 0, false
	}
	v, ok := row[diff]
	return v, ok
}

// Len returns the total number of populated buckets.
func (t ValueTable) Len() int {
	n := 0
	for _, row := range t {
		n += len(row)
	}
	return n
}

// RunMetadata is one append-only audit record per engine run.
type RunMetadata struct {
	ID         string
	CreatedAt  time.Time
	TotalGoals int
	Version    string
}

// DefaultVersion tags runs that do not specify an explicit version.
const DefaultVersion = "1.0"

// PlayerSeasonStats is one (player, season, team) summary row. The engine
// recomputes only GoalValue and GoalValueAvg; the counting columns are owned
// by the ingestion side.
type PlayerSeasonStats struct {
	PlayerID int64
	Season   string
	TeamID   int64
	Goals    int

	GoalValue    *float64
	GoalValueAvg *float64
}

// TeamSeasonStats is the per (team, season) analogue of PlayerSeasonStats.
type TeamSeasonStats struct {
	TeamID int64
	Season string
	Goals  int

	GoalValue    *float64
	GoalValueAvg *float64
}
