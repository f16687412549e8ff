package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/cardmark"
	main "github.com/fwojciec/cardmark/cmd/cardmark"
	"github.com/fwojciec/cardmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists captures with outcome filter", func(t *testing.T) {
		t.Parallel()

		var got cardmark.CaptureFilter
		captures := &mock.CaptureService{
			FindCapturesFn: func(_ context.Context, filter cardmark.CaptureFilter) ([]*cardmark.Capture, error) {
				got = filter
				return []*cardmark.Capture{{
					Src:        "https://example.com/",
					Title:      "Example",
					Outcome:    cardmark.OutcomeRejected,
					Status:     500,
					CapturedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
				}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Captures: captures}

		err := (&main.HistoryCmd{Outcome: cardmark.OutcomeRejected, Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Outcome)
		assert.Equal(t, cardmark.OutcomeRejected, *got.Outcome)
		assert.Equal(t, 5, got.Limit)
		assert.Contains(t, stdout.String(), "2026-01-02 03:04  rejected(500)  Example")
	})

	t.Run("prints placeholder when empty", func(t *testing.T) {
		t.Parallel()

		captures := &mock.CaptureService{
			FindCapturesFn: func(context.Context, cardmark.CaptureFilter) ([]*cardmark.Capture, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Captures: captures}

		err := (&main.HistoryCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "No captures yet.\n", stdout.String())
	})

	t.Run("prunes old captures first", func(t *testing.T) {
		t.Parallel()

		var cutoff time.Time
		captures := &mock.CaptureService{
			DeleteCapturesFn: func(_ context.Context, before time.Time) (int, error) {
				cutoff = before
				return 3, nil
			},
			FindCapturesFn: func(context.Context, cardmark.CaptureFilter) ([]*cardmark.Capture, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Captures: captures}

		err := (&main.HistoryCmd{Prune: 24 * time.Hour}).Run(deps)

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(-24*time.Hour), cutoff, time.Minute)
		assert.Contains(t, stdout.String(), "Pruned 3 captures")
	})

	t.Run("returns journal error", func(t *testing.T) {
		t.Parallel()

		captures := &mock.CaptureService{
			FindCapturesFn: func(context.Context, cardmark.CaptureFilter) ([]*cardmark.Capture, error) {
				return nil, errors.New("database is locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Captures: captures}

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error.")
	})
}
