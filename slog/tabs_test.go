package slog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/mock"
	cmslog "github.com/fwojciec/cardmark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTabResolver_ResolveTab(t *testing.T) {
	t.Parallel()

	event := &cardmark.BookmarkEvent{ID: "b1", URL: "https://example.com/"}

	t.Run("logs resolved tab with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.TabResolver{
			ResolveTabFn: func(context.Context, *cardmark.BookmarkEvent) (*cardmark.Tab, error) {
				return &cardmark.Tab{ID: "T42"}, nil
			},
		}

		tab, err := cmslog.NewLoggingTabResolver(inner, debugLogger(&buf)).ResolveTab(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, "T42", tab.ID)
		output := buf.String()
		assert.Contains(t, output, "resolve tab")
		assert.Contains(t, output, "url=https://example.com/")
		assert.Contains(t, output, "tab=T42")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.TabResolver{
			ResolveTabFn: func(context.Context, *cardmark.BookmarkEvent) (*cardmark.Tab, error) {
				return nil, cardmark.Errorf(cardmark.ENOTFOUND, "no active tab found")
			},
		}

		_, err := cmslog.NewLoggingTabResolver(inner, debugLogger(&buf)).ResolveTab(context.Background(), event)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "no active tab found")
	})
}

func TestLoggingTabResolver_ReleaseTab(t *testing.T) {
	t.Parallel()

	released := false
	inner := &mock.TabResolver{
		ReleaseTabFn: func(context.Context, *cardmark.Tab) error {
			released = true
			return nil
		},
	}

	var buf bytes.Buffer
	err := cmslog.NewLoggingTabResolver(inner, debugLogger(&buf)).ReleaseTab(context.Background(), &cardmark.Tab{ID: "T"})

	require.NoError(t, err)
	assert.True(t, released)
}
