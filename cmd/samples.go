package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/report"
	"github.com/nicoh/go-goal-value/internal/storage"
)

var (
	samplesMinute int
	samplesDiff   int
	samplesWindow int
)

// samplesCmd reports how many raw observations feed each bucket, before
// smoothing. Read-only.
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Report raw observation counts per minute and score diff",
	Long: `Recount the raw observations behind the estimator, per minute and
per score differential. With --minute (and optionally --diff and --window),
also report how many observations a smoothing window would pool for that
bucket — the number that decides whether the window is wide enough.`,
	Args: cobra.NoArgs,
	RunE: runSamples,
}

func init() {
	samplesCmd.Flags().IntVar(&samplesMinute, "minute", -1, "focus bucket minute")
	samplesCmd.Flags().IntVar(&samplesDiff, "diff", 0, "focus bucket score differential")
	samplesCmd.Flags().IntVar(&samplesWindow, "window", 0, "window size for the pooled count (overrides config)")
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	events, err := db.ListGoalEvents()
	if err != nil {
		return fmt.Errorf("list goal events: %w", err)
	}
	raw := engine.Estimate(events, engine.FinalResultJudge{})

	window := cfg.WindowSize
	if samplesWindow > 0 {
		window = samplesWindow
	}
	report.PrintSampleSizes(os.Stdout, raw, samplesMinute, samplesDiff, window)
	return nil
}
