package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/propagate"
	"github.com/nicoh/go-goal-value/internal/storage"
)

var propagateCmd = &cobra.Command{
	Use:   "propagate",
	Short: "Propagate persisted goal values onto dependent rows",
}

// propagateEventsCmd rewrites the goal_value column on every stored event
// from the currently persisted table.
var propagateEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Write goal values onto every goal event",
	Args:  cobra.NoArgs,
	RunE:  runPropagateEvents,
}

// propagateStatsCmd recomputes the season summaries from the event values
// written by 'propagate events'.
var propagateStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Recompute player and team season summaries",
	Long: `Sum the propagated event values per (player, season, team) and per
(team, season) and rewrite the summary columns. Reads the values written by
'goalvalue propagate events', so run that first.`,
	Args: cobra.NoArgs,
	RunE: runPropagateStats,
}

func init() {
	propagateCmd.AddCommand(propagateEventsCmd)
	propagateCmd.AddCommand(propagateStatsCmd)
}

func runPropagateEvents(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	table, err := db.LoadGoalValues()
	if err != nil {
		return fmt.Errorf("load goal values: %w", err)
	}
	res, err := propagate.Events(db, table, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Updated %d events, cleared %d (no bucket).\n", res.Updated, res.Cleared)
	return nil
}

func runPropagateStats(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players, err := propagate.PlayerStats(db, log)
	if err != nil {
		return err
	}
	teams, err := propagate.TeamStats(db, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Updated %d player-season and %d team-season rows.\n", players, teams)
	return nil
}
