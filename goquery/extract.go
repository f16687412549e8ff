package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cardmark"
)

// parse builds a document from HTML. Parsing is lenient; on failure an
// empty document is returned so strategies never fail.
func parse(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return doc
}

// baseResult applies the default extraction: document title plus meta
// description, falling back to og:description.
func baseResult(doc *goquery.Document) cardmark.ExtractResult {
	return cardmark.ExtractResult{
		Title: documentTitle(doc),
		Text:  metaDescription(doc),
	}
}

// documentTitle mirrors document.title: the first <title> element's text
// with whitespace stripped and collapsed.
func documentTitle(doc *goquery.Document) string {
	return collapseSpace(doc.Find("title").First().Text())
}

func metaDescription(doc *goquery.Document) string {
	if content := metaContent(doc, `meta[name="description"]`); content != "" {
		return content
	}
	return metaContent(doc, `meta[property="og:description"]`)
}

// metaContent returns the content attribute of the first element matching
// selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return content
}

// firstText returns the trimmed text of the first element matched by the
// first selector that yields non-empty text. Only the first element of each
// selector is considered.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
