package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/pipeline"
	"github.com/nicoh/go-goal-value/internal/storage"
)

var (
	runWindow  int
	runVersion string
)

// runCmd executes the full batch: compute, persist, then propagate onto
// events and season summaries.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full recomputation pipeline",
	Long: `Estimate and smooth the lookup table, replace the persisted copy,
then propagate the values onto every goal event and recompute the player and
team season summaries. Equivalent to 'compute' followed by
'propagate events' and 'propagate stats'.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runWindow, "window", 0, "smoothing window in minutes (odd; overrides config)")
	runCmd.Flags().StringVar(&runVersion, "version-tag", "", "version tag for the run metadata (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
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
	if runWindow > 0 {
		p.WindowSize = runWindow
	}
	if runVersion != "" {
		p.Version = runVersion
	}

	if err := p.Run(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Pipeline complete.")
	return nil
}
