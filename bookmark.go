package cardmark

import (
	"context"
	"net/url"
	"strings"
)

// BookmarkEvent is emitted once by the browser's bookmark subsystem when a
// bookmark is created. It is never mutated and is consumed by exactly one run.
type BookmarkEvent struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Validate returns an error if the event cannot start a run.
func (e *BookmarkEvent) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "bookmark URL required")
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return Errorf(EINVALID, "invalid bookmark URL %q: %v", e.URL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "bookmark URL %q is not absolute", e.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported bookmark URL scheme %q", u.Scheme)
	}
	return nil
}

// Domain returns the lower-cased hostname of the bookmarked URL.
// Returns an empty string if the URL cannot be parsed.
func (e *BookmarkEvent) Domain() string {
	u, err := url.Parse(e.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// BookmarkHandler receives bookmark events from a BookmarkSource.
type BookmarkHandler func(event *BookmarkEvent)

// BookmarkSource delivers bookmark-creation events.
type BookmarkSource interface {
	// Watch calls fn for every bookmark created after Watch starts.
	// It blocks until ctx is done or the source fails.
	Watch(ctx context.Context, fn BookmarkHandler) error
}
