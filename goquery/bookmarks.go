package goquery

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cardmark"
)

// ReadNetscapeBookmarks parses a browser bookmark export in the Netscape
// bookmark file format and returns one event per http(s) bookmark, in
// document order. Bookmarks without an ID attribute get a positional ID.
func ReadNetscapeBookmarks(r io.Reader) ([]*cardmark.BookmarkEvent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, cardmark.Errorf(cardmark.EINVALID, "failed to parse bookmark file: %v", err)
	}

	var events []*cardmark.BookmarkEvent
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if isNonHTTPLink(href) {
			return
		}

		id, ok := sel.Attr("id")
		if !ok || id == "" {
			id = fmt.Sprintf("netscape-%d", i+1)
		}

		event := &cardmark.BookmarkEvent{ID: id, URL: href}
		if event.Validate() != nil {
			return
		}
		events = append(events, event)
	})

	return events, nil
}

// isNonHTTPLink checks if a href is a link that cannot be captured.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "place:") ||
		strings.HasPrefix(href, "chrome:") ||
		strings.HasPrefix(href, "about:") ||
		strings.HasPrefix(href, "data:")
}
