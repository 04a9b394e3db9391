package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/report"
	"github.com/nicoh/go-goal-value/internal/storage"
)

// runsCmd lists the append-only run-metadata audit trail.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List engine runs (when, over how many goals, which version)",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	report.PrintRunHistory(os.Stdout, runs)
	return nil
}
