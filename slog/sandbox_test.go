package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/mock"
	cmslog "github.com/fwojciec/cardmark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSandbox_Run(t *testing.T) {
	t.Parallel()

	tab := &cardmark.Tab{ID: "T1", URL: "https://news.ycombinator.com/item?id=1"}
	strategy := &mock.Strategy{NameFn: func() string { return "hackernews" }}

	t.Run("logs strategy and text length", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Sandbox{
			RunFn: func(context.Context, *cardmark.Tab, cardmark.Strategy, string) (*cardmark.ExtractResult, error) {
				return &cardmark.ExtractResult{Title: "Story", Text: "hello"}, nil
			},
		}

		result, err := cmslog.NewLoggingSandbox(inner, debugLogger(&buf)).Run(context.Background(), tab, strategy, "news.ycombinator.com")

		require.NoError(t, err)
		assert.Equal(t, "Story", result.Title)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "strategy=hackernews")
		assert.Contains(t, output, "domain=news.ycombinator.com")
		assert.Contains(t, output, "text=5")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Sandbox{
			RunFn: func(context.Context, *cardmark.Tab, cardmark.Strategy, string) (*cardmark.ExtractResult, error) {
				return nil, errors.New("tab is gone")
			},
		}

		_, err := cmslog.NewLoggingSandbox(inner, debugLogger(&buf)).Run(context.Background(), tab, strategy, "news.ycombinator.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"tab is gone\"")
	})
}
