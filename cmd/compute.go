package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/pipeline"
	"github.com/nicoh/go-goal-value/internal/storage"
)

var (
	computeWindow  int
	computeVersion string
)

// computeCmd runs estimation and smoothing over the full event set and
// replaces the persisted lookup table.
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Recompute and persist the goal value lookup table",
	Long: `Scan every stored goal and own-goal event, estimate the raw bucket
values, smooth them along the minute axis, and replace the persisted lookup
table in one transaction. Appends a run-metadata record. Does not touch
events or season summaries; run 'goalvalue propagate' afterwards.`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().IntVar(&computeWindow, "window", 0, "smoothing window in minutes (odd; overrides config)")
	computeCmd.Flags().StringVar(&computeVersion, "version-tag", "", "version tag for the run metadata (overrides config)")
}

func runCompute(cmd *cobra.Command, args []string) error {
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

	p := pipeline.New(db, log)
	p.WindowSize = cfg.WindowSize
	p.Version = cfg.Version
	if computeWindow > 0 {
		p.WindowSize = computeWindow
	}
	if computeVersion != "" {
		p.Version = computeVersion
	}

	table, err := p.Compute()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Persisted %d buckets.\n", table.Len())
	return nil
}
