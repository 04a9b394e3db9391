// Package propagate rewrites the denormalized goal_value columns from the
// persisted lookup table: first onto every goal event, then onto the
// player- and team-season summaries that read those events.
package propagate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/model"
	"github.com/nicoh/go-goal-value/internal/storage"
)

// EventResult reports what one event-propagation pass did.
type EventResult struct {
	Updated int // events that received a value
	Cleared int // events set to NULL (no bucket for them)
}

// Events looks up every goal/own-goal event in the given table and writes
// its goal_value column in one transaction. A lookup miss is expected where
// data is sparse: the column is cleared to NULL, counted, and the batch
// continues.
func Events(db *storage.DB, table model.ValueTable, log *zap.Logger) (EventResult, error) {
	events, err := db.ListGoalEvents()
	if err != nil {
		return EventResult{}, fmt.Errorf("list goal events: %w", err)
	}

	var res EventResult
	values := make(map[int64]*float64, len(events))
	for _, ev := range events {
		diff := engine.ClampScoreDiff(engine.BenefitDiff(ev))
		v, ok := table.Get(ev.Minute, diff)
		if !ok {
			values[ev.ID] = nil
			res.Cleared++
			log.Debug("no bucket for event",
				zap.Int64("event_id", ev.ID),
				zap.Int("minute", ev.Minute),
				zap.Int("score_diff", diff))
			continue
		}
		val := v
		values[ev.ID] = &val
		res.Updated++
	}

	if err := db.UpdateEventGoalValues(values); err != nil {
		return EventResult{}, fmt.Errorf("update event goal values: %w", err)
	}
	log.Info("propagated goal values onto events",
		zap.Int("updated", res.Updated),
		zap.Int("cleared", res.Cleared))
	return res, nil
}
