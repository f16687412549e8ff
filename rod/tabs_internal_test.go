package rod

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameURL(t *testing.T) {
	t.Parallel()

	assert.True(t, sameURL("https://example.com", "https://example.com/"))
	assert.True(t, sameURL("https://example.com/a#top", "https://example.com/a"))
	assert.False(t, sameURL("https://example.com/a", "https://example.com/b"))
	assert.False(t, sameURL("https://example.com/a?x=1", "https://example.com/a?x=2"))
}

func TestIsWebPage(t *testing.T) {
	t.Parallel()

	assert.True(t, isWebPage("https://example.com"))
	assert.True(t, isWebPage("HTTP://example.com"))
	assert.False(t, isWebPage("chrome://settings"))
	assert.False(t, isWebPage("about:blank"))
	assert.False(t, isWebPage("chrome-extension://abc/popup.html"))
}

func TestBrowser_PageContext(t *testing.T) {
	t.Parallel()

	t.Run("bounds work by the page timeout", func(t *testing.T) {
		t.Parallel()

		b := &Browser{pageTimeout: time.Minute}
		before := time.Now()

		ctx, cancel := b.pageContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, before.Add(time.Minute), deadline, time.Second)
	})

	t.Run("cancel releases the timer immediately", func(t *testing.T) {
		t.Parallel()

		b := &Browser{pageTimeout: time.Hour}

		ctx, cancel := b.pageContext(context.Background())
		cancel()

		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("keeps an earlier parent deadline", func(t *testing.T) {
		t.Parallel()

		b := &Browser{pageTimeout: time.Hour}
		parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
		defer parentCancel()
		want, _ := parent.Deadline()

		ctx, cancel := b.pageContext(parent)
		defer cancel()

		got, ok := ctx.Deadline()
		require.True(t, ok)
		assert.Equal(t, want, got)
	})
}
