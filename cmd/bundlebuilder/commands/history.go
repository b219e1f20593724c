package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `name:"limit" short:"n" help:"Number of runs to show" default:"10"`
	RunID string `name:"run" help:"Show the task events of a single run"`
}

func (h *HistoryCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.Output.History == "" {
		return errors.ConfigError("output.history is not configured").Build()
	}
	store, err := history.Open(cfg.Resolve(cfg.Output.History))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if h.RunID != "" {
		events, err := store.ByRun(ctx, h.RunID)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return errors.NewError(errors.CategoryNotFound, "run not found").WithContext("run_id", h.RunID).Build()
		}
		printRunEvents(os.Stdout, events)
		return nil
	}

	runs, err := store.Recent(ctx, h.Limit)
	if err != nil {
		return err
	}
	printRuns(os.Stdout, runs)
	return nil
}

func printRuns(w io.Writer, runs []history.RunSummary) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "No recorded runs")
		return
	}
	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s  %s  %-8s %s/%s diagnostics=%s\n",
			r.Finished.Format(time.RFC3339), r.RunID, r.Outcome, r.BuildTarget, r.BuildMode, r.Diagnostics)
	}
}

func printRunEvents(w io.Writer, events []history.Event) {
	for _, e := range events {
		if e.Type == history.EventTaskCompleted {
			_, _ = fmt.Fprintf(w, "%-20s %-8s %sms %s\n", e.Metadata["task"], e.Metadata["result"], e.Metadata["duration_ms"], e.Metadata["error"])
			continue
		}
		_, _ = fmt.Fprintf(w, "outcome: %s\n", e.Metadata["outcome"])
	}
}
