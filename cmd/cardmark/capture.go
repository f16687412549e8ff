package main

import (
	"fmt"

	"github.com/fwojciec/cardmark"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	id := c.ID
	if id == "" {
		id = "cli"
	}

	result, err := deps.Pipeline.Run(deps.Ctx, &cardmark.BookmarkEvent{ID: id, URL: c.URL})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardmark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %s\n", result.Outcome, result.Card.Title)
	if result.Degraded {
		fmt.Fprintln(deps.Stdout, "  page content could not be extracted")
	}
	if !result.Outcome.OK() {
		return cardmark.Errorf(cardmark.EUNAVAILABLE, "card not delivered: %s", result.Outcome)
	}
	return nil
}
