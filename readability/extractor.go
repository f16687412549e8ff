// Package readability provides an article-excerpt strategy backed by
// go-readability, used for long-form publishing sites whose meta
// descriptions are often generic.
package readability

import (
	"strings"

	"github.com/fwojciec/cardmark"
	"github.com/go-shiori/go-readability"
)

// Ensure Strategy implements cardmark.Strategy at compile time.
var _ cardmark.Strategy = (*Strategy)(nil)

// Strategy augments a base strategy with the readability article title
// and excerpt.
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

// Extract runs the base strategy, then overrides title and text with the
// article title and excerpt when readability finds them.
func (s *Strategy) Extract(html string, domain string) cardmark.ExtractResult {
	result := s.base.Extract(html, domain)
	if strings.TrimSpace(html) == "" {
		return result
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return result
	}

	if title := strings.Join(strings.Fields(article.Title), " "); title != "" {
		result.Title = title
	}
	if excerpt := strings.TrimSpace(article.Excerpt); excerpt != "" {
		result.Text = excerpt
	}

	return result
}
