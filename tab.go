package cardmark

import "context"

// Tab is a read-only view of the browser tab holding the bookmarked page.
// It is borrowed for the duration of one run and never persisted.
type Tab struct {
	ID       string
	WindowID int
	Title    string
	URL      string
}

// TabResolver determines which tab corresponds to a new bookmark.
type TabResolver interface {
	// ResolveTab returns the tab holding the bookmarked page.
	// Returns ENOTFOUND when no tab is available, which aborts the run.
	ResolveTab(ctx context.Context, event *BookmarkEvent) (*Tab, error)

	// ReleaseTab releases anything ResolveTab acquired for the tab.
	// Resolvers that only observe existing tabs do nothing.
	ReleaseTab(ctx context.Context, tab *Tab) error
}
