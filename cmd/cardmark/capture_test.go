package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/cardmark"
	main "github.com/fwojciec/cardmark/cmd/cardmark"
	"github.com/fwojciec/cardmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints delivered card", func(t *testing.T) {
		t.Parallel()

		var sent *cardmark.Card
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Pipeline: staticPipeline(func(card *cardmark.Card) cardmark.Outcome {
				sent = card
				return cardmark.Outcome{Kind: cardmark.Delivered, Status: 201}
			}),
		}

		err := (&main.CaptureCmd{URL: "https://example.com/", ID: "7"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "delivered: Extracted\n", stdout.String())
		assert.Equal(t, "https://example.com/", sent.Src)
	})

	t.Run("notes degraded captures", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		pipeline := staticPipeline(func(*cardmark.Card) cardmark.Outcome {
			return cardmark.Outcome{Kind: cardmark.Delivered, Status: 201}
		})
		pipeline.Extractor = &mock.PageExtractor{
			ExtractFn: func(context.Context, *cardmark.Tab, string) (*cardmark.ExtractResult, error) {
				return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "tab is gone")
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Pipeline: pipeline}

		err := (&main.CaptureCmd{URL: "https://example.com/"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "delivered: Tab")
		assert.Contains(t, stdout.String(), "could not be extracted")
	})

	t.Run("returns error for invalid URL", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Pipeline: staticPipeline(nil),
		}

		err := (&main.CaptureCmd{URL: "not a url"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, cardmark.EINVALID, cardmark.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns error when delivery fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Pipeline: staticPipeline(func(*cardmark.Card) cardmark.Outcome {
				return cardmark.Outcome{Kind: cardmark.Rejected, Status: 500}
			}),
		}

		err := (&main.CaptureCmd{URL: "https://example.com/"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "rejected(500): Extracted")
	})
}
