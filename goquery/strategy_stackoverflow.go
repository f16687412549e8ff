package goquery

import (
	"strings"

	"github.com/fwojciec/cardmark"
)

var _ cardmark.Strategy = (*StackOverflowStrategy)(nil)

// StackOverflowStrategy extracts the question title and the question body
// as Markdown, so code blocks survive in the card text.
type StackOverflowStrategy struct {
	converter cardmark.Converter
}

// NewStackOverflowStrategy creates a new StackOverflowStrategy.
// If converter is nil, the body is reduced to plain text.
func NewStackOverflowStrategy(converter cardmark.Converter) *StackOverflowStrategy {
	return &StackOverflowStrategy{converter: converter}
}

// Name returns the strategy's identifier.
func (s *StackOverflowStrategy) Name() string {
	return "stackoverflow"
}

// Extract runs the default extraction and overrides it with the question.
func (s *StackOverflowStrategy) Extract(html string, domain string) cardmark.ExtractResult {
	doc := parse(html)
	result := baseResult(doc)

	if title := firstText(doc, []string{"#question-header h1 a", "#question-header h1"}); title != "" {
		result.Title = title
	}

	body := doc.Find("#question .js-post-body, #question .s-prose").First()
	if body.Length() == 0 {
		return result
	}

	if s.converter != nil {
		if inner, err := body.Html(); err == nil {
			if md, err := s.converter.Convert(inner); err == nil && strings.TrimSpace(md) != "" {
				result.Text = strings.TrimSpace(md)
				return result
			}
		}
	}

	if text := strings.TrimSpace(body.Text()); text != "" {
		result.Text = text
	}
	return result
}
