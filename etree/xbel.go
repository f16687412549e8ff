// Package etree reads XML bookmark files using beevik/etree.
package etree

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/cardmark"
)

// ReadXBEL parses an XBEL document and returns one event per valid http(s)
// bookmark, in document order. Bookmarks without an id attribute get a
// positional ID.
func ReadXBEL(r io.Reader) ([]*cardmark.BookmarkEvent, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, cardmark.Errorf(cardmark.EINVALID, "failed to parse XBEL: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "xbel" {
		return nil, cardmark.Errorf(cardmark.EINVALID, "not an XBEL document")
	}

	var events []*cardmark.BookmarkEvent
	for i, el := range root.FindElements("//bookmark[@href]") {
		id := el.SelectAttrValue("id", "")
		if id == "" {
			id = fmt.Sprintf("xbel-%d", i+1)
		}

		event := &cardmark.BookmarkEvent{
			ID:  id,
			URL: strings.TrimSpace(el.SelectAttrValue("href", "")),
		}
		if event.Validate() != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}
