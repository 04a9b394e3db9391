package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/report"
	"github.com/nicoh/go-goal-value/internal/storage"
)

// goalsCmd lists the individual goal events behind one bucket, for manual
// auditing of outliers.
var goalsCmd = &cobra.Command{
	Use:   "goals <minute> <score-diff>",
	Short: "List the goal events that fall into one bucket",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoals,
}

func runGoals(cmd *cobra.Command, args []string) error {
	minute, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid minute %q: %w", args[0], err)
	}
	if minute < engine.MinMinute || minute > engine.MaxMinute {
		return fmt.Errorf("minute %d out of range [%d, %d]", minute, engine.MinMinute, engine.MaxMinute)
	}
	diff, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid score diff %q: %w", args[1], err)
	}
	diff = engine.ClampScoreDiff(diff)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	events, err := db.ListGoalEventsInBucket(minute, diff)
	if err != nil {
		return fmt.Errorf("list goals in bucket: %w", err)
	}
	report.PrintBucketGoals(os.Stdout, events, minute, diff)
	return nil
}
