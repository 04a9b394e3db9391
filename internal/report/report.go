// Package report renders read-only diagnostic views of the lookup table and
// the raw observations behind it.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintValueGrid renders the table as a minute × score-diff grid. Absent
// buckets print as "—" so sparse regions stay visible.
func PrintValueGrid(w io.Writer, table model.ValueTable) {
	if table.Len() == 0 {
		fmt.Fprintln(w, "Lookup table is empty. Run 'goalvalue compute' first.")
		return
	}

	t := newTable(w)
	header := make([]any, 0, engine.MaxScoreDiff-engine.MinScoreDiff+2)
	header = append(header, "MIN")
	for d := engine.MinScoreDiff; d <= engine.MaxScoreDiff; d++ {
		header = append(header, fmt.Sprintf("%+d", d))
	}
	t.Header(header...)

	for m := engine.MinMinute; m <= engine.MaxMinute; m++ {
		row, ok := table[m]
		if !ok {
			continue
		}
		cells := make([]any, 0, len(header))
		cells = append(cells, fmt.Sprintf("%d", m))
		for d := engine.MinScoreDiff; d <= engine.MaxScoreDiff; d++ {
			if v, present := row[d]; present {
				cells = append(cells, fmt.Sprintf("%.3f", v))
			} else {
				cells = append(cells, "—")
			}
		}
		t.Append(cells...)
	}
	t.Render()
	fmt.Fprintf(w, "\n(%d buckets)\n", table.Len())
}

// PrintSampleSizes renders per-minute and per-diff observation counts, plus
// the pooled window count when a focus bucket is given (minute >= 0).
func PrintSampleSizes(w io.Writer, raw engine.RawTable, focusMinute, focusDiff, windowSize int) {
	rep := engine.SampleSizes(raw)
	if rep.Total == 0 {
		fmt.Fprintln(w, "No observations stored yet.")
		return
	}

	fmt.Fprintf(w, "\nTotal observations: %d\n\n--- By minute ---\n\n", rep.Total)
	mt := newTable(w)
	mt.Header("MIN", "OBS")
	for _, m := range engine.SortedKeys(rep.ByMinute) {
		mt.Append(fmt.Sprintf("%d", m), fmt.Sprintf("%d", rep.ByMinute[m]))
	}
	mt.Render()

	fmt.Fprintf(w, "\n--- By score diff ---\n\n")
	dt := newTable(w)
	dt.Header("DIFF", "OBS")
	for _, d := range engine.SortedKeys(rep.ByDiff) {
		dt.Append(fmt.Sprintf("%+d", d), fmt.Sprintf("%d", rep.ByDiff[d]))
	}
	dt.Render()

	if focusMinute >= 0 {
		pooled := engine.WindowObservations(raw, focusMinute, focusDiff, windowSize)
		fmt.Fprintf(w, "\nBucket (%d, %+d): %d observations pooled in a window of %d minutes\n",
			focusMinute, engine.ClampScoreDiff(focusDiff), pooled, engine.NormalizeWindow(windowSize))
	}
}

// PrintBucketGoals lists the individual events behind one bucket.
func PrintBucketGoals(w io.Writer, events []model.GoalEvent, minute, diff int) {
	if len(events) == 0 {
		fmt.Fprintf(w, "No goals stored for bucket (%d, %+d).\n", minute, diff)
		return
	}

	fmt.Fprintf(w, "\nGoals in bucket (%d, %+d):\n\n", minute, diff)
	t := newTable(w)
	t.Header("EVENT", "MATCH", "SEASON", "PLAYER", "TEAM", "KIND", "PRE", "FINAL", "VALUE")
	for _, ev := range events {
		value := "—"
		if ev.GoalValue != nil {
			value = fmt.Sprintf("%.3f", *ev.GoalValue)
		}
		t.Append(
			fmt.Sprintf("%d", ev.ID),
			fmt.Sprintf("%d", ev.MatchID),
			ev.Season,
			fmt.Sprintf("%d", ev.PlayerID),
			fmt.Sprintf("%d", ev.TeamID),
			ev.Kind.String(),
			fmt.Sprintf("%d-%d", ev.ScoreForPre, ev.ScoreAgainstPre),
			fmt.Sprintf("%d-%d", ev.FinalFor, ev.FinalAgainst),
			value,
		)
	}
	t.Render()
	fmt.Fprintf(w, "\n(%d goals)\n", len(events))
}

// PrintRunHistory renders the append-only run-metadata trail, newest first.
func PrintRunHistory(w io.Writer, runs []model.RunMetadata) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet. Run 'goalvalue compute' first.")
		return
	}

	t := newTable(w)
	t.Header("RUN", "COMPUTED AT", "GOALS", "VERSION")
	for _, r := range runs {
		t.Append(
			r.ID[:8],
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", r.TotalGoals),
			r.Version,
		)
	}
	t.Render()
}
