package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chromeBookmarks renders a Bookmarks file with the given url nodes on the
// bookmark bar and one nested folder holding the last node.
func chromeBookmarks(nodes ...[2]string) string {
	var bar []string
	for _, n := range nodes {
		bar = append(bar, fmt.Sprintf(`{"id":%q,"name":"n","type":"url","url":%q}`, n[0], n[1]))
	}
	return fmt.Sprintf(`{
  "checksum": "abc",
  "roots": {
    "bookmark_bar": {"children": [%s], "id": "1", "name": "Bookmarks bar", "type": "folder"},
    "other": {"children": [
      {"children": [{"id": "90", "name": "nested", "type": "url", "url": "https://nested.example.com/"}],
       "id": "80", "name": "Folder", "type": "folder"}
    ], "id": "2", "name": "Other bookmarks", "type": "folder"},
    "synced": {"children": [], "id": "3", "name": "Mobile bookmarks", "type": "folder"}
  },
  "version": 1
}`, strings.Join(bar, ","))
}

func TestParseChromeBookmarks(t *testing.T) {
	t.Parallel()

	t.Run("returns url nodes across roots and folders", func(t *testing.T) {
		t.Parallel()

		data := chromeBookmarks([2]string{"5", "https://a.example.com/"}, [2]string{"6", "https://b.example.com/"})

		events := fs.ParseChromeBookmarks([]byte(data))

		assert.Equal(t, []*cardmark.BookmarkEvent{
			{ID: "5", URL: "https://a.example.com/"},
			{ID: "6", URL: "https://b.example.com/"},
			{ID: "90", URL: "https://nested.example.com/"},
		}, events)
	})

	t.Run("returns nothing for unrelated JSON", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fs.ParseChromeBookmarks([]byte(`{"foo": 1}`)))
	})
}

func TestWatcher_Watch(t *testing.T) {
	t.Parallel()

	t.Run("emits bookmarks added after start", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Bookmarks")
		require.NoError(t, os.WriteFile(path, []byte(chromeBookmarks([2]string{"5", "https://old.example.com/"})), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan *cardmark.BookmarkEvent, 10)
		done := make(chan error, 1)
		w := fs.NewWatcher(path, fs.WithInterval(10*time.Millisecond))
		go func() {
			done <- w.Watch(ctx, func(e *cardmark.BookmarkEvent) { events <- e })
		}()

		// Let the watcher take its snapshot.
		time.Sleep(50 * time.Millisecond)
		updated := chromeBookmarks([2]string{"5", "https://old.example.com/"}, [2]string{"7", "https://new.example.com/post"})
		require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

		select {
		case e := <-events:
			assert.Equal(t, &cardmark.BookmarkEvent{ID: "7", URL: "https://new.example.com/post"}, e)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for bookmark event")
		}

		cancel()
		require.NoError(t, <-done)
		assert.Empty(t, events)
	})

	t.Run("returns not found for a missing file", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWatcher(filepath.Join(t.TempDir(), "Bookmarks"))

		err := w.Watch(context.Background(), func(*cardmark.BookmarkEvent) {})

		assert.Equal(t, cardmark.ENOTFOUND, cardmark.ErrorCode(err))
	})

	t.Run("returns invalid for a corrupt file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Bookmarks")
		require.NoError(t, os.WriteFile(path, []byte(`{"roots":`), 0644))

		err := fs.NewWatcher(path).Watch(context.Background(), func(*cardmark.BookmarkEvent) {})

		assert.Equal(t, cardmark.EINVALID, cardmark.ErrorCode(err))
	})
}

func TestDefaultBookmarksPath(t *testing.T) {
	t.Parallel()

	path, err := fs.DefaultBookmarksPath()
	if err != nil {
		t.Skip("no home or config directory")
	}
	assert.Equal(t, "Bookmarks", filepath.Base(path))
}
