// Package trafilatura provides a lead-paragraph strategy backed by
// go-trafilatura, used for newsletter platforms whose pages carry the
// post body but little metadata.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/cardmark"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Strategy implements cardmark.Strategy at compile time.
var _ cardmark.Strategy = (*Strategy)(nil)

// Strategy augments a base strategy with the main-content lead paragraph.
type Strategy struct {
	id   string
	base cardmark.Strategy
}

// NewStrategy creates a new Strategy named id layered on base.
func NewStrategy(id string, base cardmark.Strategy) *Strategy {
	return &Strategy{id: id, base: base}
}

// Name returns the strategy's identifier.
func (s *Strategy) Name() string {
	return s.id
}

// Extract runs the base strategy, then overrides the title with the
// extracted metadata title and the text with the first paragraph of the
// main content.
func (s *Strategy) Extract(html string, domain string) cardmark.ExtractResult {
	result := s.base.Extract(html, domain)
	if strings.TrimSpace(html) == "" {
		return result
	}

	extracted, err := trafilatura.Extract(strings.NewReader(html), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil || extracted == nil {
		return result
	}

	title := strings.TrimSpace(extracted.Metadata.Title)
	if title != "" {
		result.Title = title
	}
	if lead := leadParagraph(extracted.ContentText, title); lead != "" {
		result.Text = lead
	}

	return result
}

// leadParagraph returns the first non-empty line of extracted text that
// is not a repeat of the title heading.
func leadParagraph(text, title string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" && line != title {
			return line
		}
	}
	return ""
}
