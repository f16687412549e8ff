package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/cardmark"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Prune > 0 {
		n, err := deps.Captures.DeleteCaptures(deps.Ctx, time.Now().Add(-c.Prune))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cardmark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Pruned %d captures\n", n)
	}

	filter := cardmark.CaptureFilter{Limit: c.Limit}
	if c.Outcome != "" {
		filter.Outcome = &c.Outcome
	}

	captures, err := deps.Captures.FindCaptures(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardmark.ErrorMessage(err))
		return err
	}

	if len(captures) == 0 {
		fmt.Fprintln(deps.Stdout, "No captures yet.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, cardmark.FormatCaptures(captures))
	return nil
}
