package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/capture"
	main "github.com/fwojciec/cardmark/cmd/cardmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    []string
	}{
		{
			name: "netscape export",
			file: "bookmarks.html",
			content: `<DL><p>
<DT><A HREF="https://a.example.com/" ADD_DATE="1">A</A>
<DT><A HREF="https://b.example.com/">B</A>
</DL>`,
			want: []string{"https://a.example.com/", "https://b.example.com/"},
		},
		{
			name:    "xbel file",
			file:    "bookmarks.xbel",
			content: `<xbel version="1.0"><bookmark href="https://x.example.com/"><title>X</title></bookmark></xbel>`,
			want:    []string{"https://x.example.com/"},
		},
		{
			name: "chrome bookmarks json without extension",
			file: "Bookmarks",
			content: `{"roots": {"bookmark_bar": {"type": "folder", "children": [
				{"id": "5", "type": "url", "url": "https://c.example.com/"}
			]}}}`,
			want: []string{"https://c.example.com/"},
		},
		{
			name:    "xbel sniffed without extension",
			file:    "export",
			content: `<?xml version="1.0"?><xbel><bookmark href="https://y.example.com/"/></xbel>`,
			want:    []string{"https://y.example.com/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			var mu sync.Mutex
			var sent []string
			stdout := &bytes.Buffer{}
			deps := &main.Dependencies{
				Ctx:    context.Background(),
				Stdout: stdout,
				Stderr: &bytes.Buffer{},
				Dispatcher: &capture.Dispatcher{
					Pipeline: staticPipeline(func(card *cardmark.Card) cardmark.Outcome {
						mu.Lock()
						sent = append(sent, card.Src)
						mu.Unlock()
						return cardmark.Outcome{Kind: cardmark.Delivered, Status: 201}
					}),
					Concurrency: 1,
				},
			}

			err := (&main.ImportCmd{File: path}).Run(deps)

			require.NoError(t, err)
			assert.Equal(t, tt.want, sent)
			assert.Contains(t, stdout.String(), "Delivered")
		})
	}

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes")
		require.NoError(t, os.WriteFile(path, []byte("just some text"), 0644))
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Dispatcher: &capture.Dispatcher{Pipeline: staticPipeline(nil)},
		}

		err := (&main.ImportCmd{File: path}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, cardmark.EINVALID, cardmark.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unrecognized bookmark file format")
	})

	t.Run("reports failed captures", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bookmarks.xbel")
		require.NoError(t, os.WriteFile(path, []byte(`<xbel><bookmark href="https://down.example.com/"/></xbel>`), 0644))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Dispatcher: &capture.Dispatcher{
				Pipeline: staticPipeline(func(*cardmark.Card) cardmark.Outcome {
					return cardmark.Outcome{Kind: cardmark.Rejected, Status: 503}
				}),
			},
		}

		err := (&main.ImportCmd{File: path}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "fail https://down.example.com/")
		assert.Contains(t, stdout.String(), "rejected 1")
	})
}
