package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/report"
	"github.com/nicoh/go-goal-value/internal/storage"
)

// tableCmd prints the persisted lookup table as a grid.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the persisted lookup table as a minute × score-diff grid",
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	table, err := db.LoadGoalValues()
	if err != nil {
		return fmt.Errorf("load goal values: %w", err)
	}
	report.PrintValueGrid(os.Stdout, table)
	return nil
}
