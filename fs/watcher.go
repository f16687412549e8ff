package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fwojciec/cardmark"
	"github.com/tidwall/gjson"
)

// DefaultInterval is how often the Watcher checks the bookmarks file.
const DefaultInterval = time.Second

// Ensure Watcher implements cardmark.BookmarkSource at compile time.
var _ cardmark.BookmarkSource = (*Watcher)(nil)

// Watcher emits a BookmarkEvent for every bookmark added to a Chrome
// profile's Bookmarks file. Chrome replaces the file on every change, so the
// Watcher polls its modification time instead of holding a file handle.
type Watcher struct {
	path     string
	interval time.Duration
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// NewWatcher creates a Watcher for the Bookmarks file at path.
func NewWatcher(path string, opts ...WatcherOption) *Watcher {
	w := &Watcher{path: path, interval: DefaultInterval}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DefaultBookmarksPath returns the Bookmarks file of Chrome's default
// profile for the current platform.
func DefaultBookmarksPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "Google", "Chrome", "User Data", "Default", "Bookmarks"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "Bookmarks"), nil
	default:
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "google-chrome", "Default", "Bookmarks"), nil
	}
}

// Watch snapshots the bookmarks present at start and calls fn, in file
// order, for each bookmark added afterwards. It blocks until ctx is done.
// Returns ENOTFOUND when the file does not exist at start.
func (w *Watcher) Watch(ctx context.Context, fn cardmark.BookmarkHandler) error {
	info, err := os.Stat(w.path)
	if os.IsNotExist(err) {
		return cardmark.Errorf(cardmark.ENOTFOUND, "bookmarks file not found: %s", w.path)
	} else if err != nil {
		return err
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) {
		return cardmark.Errorf(cardmark.EINVALID, "bookmarks file is not valid JSON: %s", w.path)
	}

	seen := make(map[string]bool)
	for _, e := range ParseChromeBookmarks(data) {
		seen[e.ID] = true
	}
	modTime, size := info.ModTime(), info.Size()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		info, err := os.Stat(w.path)
		if err != nil {
			// The file is briefly absent while Chrome replaces it.
			continue
		}
		if info.ModTime().Equal(modTime) && info.Size() == size {
			continue
		}

		data, err := os.ReadFile(w.path)
		if err != nil || !gjson.ValidBytes(data) {
			continue
		}
		modTime, size = info.ModTime(), info.Size()

		for _, e := range ParseChromeBookmarks(data) {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			fn(e)
		}
	}
}

// ParseChromeBookmarks returns the url nodes of a Chrome Bookmarks file in
// depth-first order across all roots.
func ParseChromeBookmarks(data []byte) []*cardmark.BookmarkEvent {
	var events []*cardmark.BookmarkEvent
	gjson.GetBytes(data, "roots").ForEach(func(_, root gjson.Result) bool {
		if root.IsObject() {
			events = appendBookmarks(events, root)
		}
		return true
	})
	return events
}

func appendBookmarks(events []*cardmark.BookmarkEvent, node gjson.Result) []*cardmark.BookmarkEvent {
	switch node.Get("type").String() {
	case "url":
		events = append(events, &cardmark.BookmarkEvent{
			ID:  node.Get("id").String(),
			URL: node.Get("url").String(),
		})
	case "folder":
		for _, child := range node.Get("children").Array() {
			events = appendBookmarks(events, child)
		}
	}
	return events
}
