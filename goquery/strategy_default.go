package goquery

import "github.com/fwojciec/cardmark"

var _ cardmark.Strategy = (*DefaultStrategy)(nil)

// DefaultStrategy extracts the document title and the page's meta
// description (or og:description). It applies to any site and is the base
// layer of every site-specific strategy.
type DefaultStrategy struct{}

// NewDefaultStrategy creates a new DefaultStrategy.
func NewDefaultStrategy() *DefaultStrategy {
	return &DefaultStrategy{}
}

// Name returns the strategy's identifier.
func (s *DefaultStrategy) Name() string {
	return "default"
}

// Extract returns the document title and meta description. Text is empty
// when neither description tag is present.
func (s *DefaultStrategy) Extract(html string, domain string) cardmark.ExtractResult {
	return baseResult(parse(html))
}
