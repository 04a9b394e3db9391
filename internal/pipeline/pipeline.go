// Package pipeline wires the engine stages into the batch run:
// estimate → smooth → persist → load → propagate events → propagate stats.
// Each stage is transactional on its own; a failure surfaces before the next
// stage starts, so readers never see a half-published table.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/model"
	"github.com/nicoh/go-goal-value/internal/propagate"
	"github.com/nicoh/go-goal-value/internal/storage"
)

// Pipeline runs the full recomputation against one store.
type Pipeline struct {
	DB         *storage.DB
	Judge      engine.OutcomeJudge
	WindowSize int
	Version    string
	Log        *zap.Logger
}

// New returns a Pipeline with the default outcome judge, window, and version.
func New(db *storage.DB, log *zap.Logger) *Pipeline {
	return &Pipeline{
		DB:         db,
		Judge:      engine.FinalResultJudge{},
		WindowSize: engine.DefaultWindowSize,
		Version:    model.DefaultVersion,
		Log:        log,
	}
}

// Compute runs estimation and smoothing over the full event snapshot,
// replaces the persisted table, and appends one run-metadata record. It
// returns the persisted table so callers can keep propagating without a
// reload.
func (p *Pipeline) Compute() (model.ValueTable, error) {
	events, err := p.DB.ListGoalEvents()
	if err != nil {
		return nil, fmt.Errorf("list goal events: %w", err)
	}

	raw := engine.Estimate(events, p.Judge)
	table := engine.Smooth(raw, p.WindowSize)
	p.Log.Info("estimated goal values",
		zap.Int("events", len(events)),
		zap.Int("raw_observations", raw.TotalObservations()),
		zap.Int("smoothed_buckets", table.Len()),
		zap.Int("window", engine.NormalizeWindow(p.WindowSize)))

	if err := p.DB.ReplaceGoalValues(table); err != nil {
		return nil, fmt.Errorf("persist goal values: %w", err)
	}
	meta := model.RunMetadata{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		TotalGoals: len(events),
		Version:    p.Version,
	}
	if err := p.DB.InsertRunMetadata(meta); err != nil {
		return nil, fmt.Errorf("save run metadata: %w", err)
	}
	p.Log.Info("persisted lookup table",
		zap.String("run_id", meta.ID),
		zap.String("version", meta.Version),
		zap.Int("total_goals", meta.TotalGoals))
	return table, nil
}

// Propagate pushes a loaded table onto events, then recomputes the player
// and team season summaries. The ordering is load-bearing: the stats passes
// read the event values the first pass writes.
func (p *Pipeline) Propagate(table model.ValueTable) error {
	if _, err := propagate.Events(p.DB, table, p.Log); err != nil {
		return fmt.Errorf("propagate events: %w", err)
	}
	if _, err := propagate.PlayerStats(p.DB, p.Log); err != nil {
		return fmt.Errorf("propagate player stats: %w", err)
	}
	if _, err := propagate.TeamStats(p.DB, p.Log); err != nil {
		return fmt.Errorf("propagate team stats: %w", err)
	}
	return nil
}

// Run executes the whole batch. The table is re-read from storage between
// persist and propagation so the run exercises exactly what readers will see.
func (p *Pipeline) Run() error {
	if _, err := p.Compute(); err != nil {
		return err
	}
	table, err := p.DB.LoadGoalValues()
	if err != nil {
		return fmt.Errorf("load goal values: %w", err)
	}
	return p.Propagate(table)
}
