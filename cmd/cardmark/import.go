package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/capture"
	"github.com/fwojciec/cardmark/etree"
	"github.com/fwojciec/cardmark/fs"
	"github.com/fwojciec/cardmark/goquery"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	events, err := readBookmarks(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardmark.ErrorMessage(err))
		return err
	}

	progress := func(event capture.ProgressEvent) {
		switch event.Type {
		case capture.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d bookmarks\n", event.Total)
		case capture.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.URL, event.Error)
		}
	}

	summary, err := deps.Dispatcher.RunAll(deps.Ctx, events, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Delivered %d, rejected %d, failed %d, aborted %d, skipped %d",
		summary.Delivered, summary.Rejected, summary.Failed, summary.Aborted, summary.Skipped)
	if summary.Degraded > 0 {
		fmt.Fprintf(deps.Stdout, " (%d without content)", summary.Degraded)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}

// readBookmarks parses a bookmark file, choosing the format from the file
// name and falling back to sniffing the content.
func readBookmarks(path string) ([]*cardmark.BookmarkEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xbel", ".xml":
		return etree.ReadXBEL(bytes.NewReader(data))
	case ".html", ".htm":
		return goquery.ReadNetscapeBookmarks(bytes.NewReader(data))
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return fs.ParseChromeBookmarks(trimmed), nil
	case bytes.HasPrefix(trimmed, []byte("<?xml")), bytes.HasPrefix(trimmed, []byte("<xbel")):
		return etree.ReadXBEL(bytes.NewReader(trimmed))
	case bytes.HasPrefix(trimmed, []byte("<")):
		return goquery.ReadNetscapeBookmarks(bytes.NewReader(trimmed))
	}
	return nil, cardmark.Errorf(cardmark.EINVALID, "unrecognized bookmark file format: %s", path)
}
