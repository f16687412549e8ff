package main

import (
	"fmt"

	"github.com/fwojciec/cardmark"
)

// Run executes the watch command. It returns when the context is canceled
// and every capture in flight has finished.
func (c *WatchCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Watching for new bookmarks. Press Ctrl+C to stop.")

	err := deps.Source.Watch(deps.Ctx, func(event *cardmark.BookmarkEvent) {
		deps.Dispatcher.Handle(deps.Ctx, event)
	})
	deps.Dispatcher.Wait()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardmark.ErrorMessage(err))
		return err
	}
	return nil
}
