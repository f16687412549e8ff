package goquery

import "github.com/fwojciec/cardmark"

var _ cardmark.StrategyRegistry = (*Registry)(nil)

// Registry holds an ordered list of domain matchers and the strategies they
// select. Resolve walks the list in registration order and falls back to the
// default strategy when no matcher accepts the domain.
//
// Register must only be called during initialization. After that the
// registry is read-only and safe for concurrent Resolve calls.
type Registry struct {
	fallback cardmark.Strategy
	entries  []cardmark.StrategyEntry
}

// NewRegistry creates a new Registry with the given default strategy.
func NewRegistry(fallback cardmark.Strategy) *Registry {
	return &Registry{fallback: fallback}
}

// Register appends a strategy for domains accepted by matcher.
// Existing registrations are never replaced; the earliest match wins.
func (r *Registry) Register(matcher cardmark.DomainMatcher, strategy cardmark.Strategy) {
	r.entries = append(r.entries, cardmark.StrategyEntry{Matcher: matcher, Strategy: strategy})
}

// Resolve returns the first registered strategy matching domain, or the
// default strategy.
func (r *Registry) Resolve(domain string) cardmark.Strategy {
	for _, e := range r.entries {
		if e.Matcher.Match(domain) {
			return e.Strategy
		}
	}
	return r.fallback
}

// Entries returns a copy of the registrations in order.
func (r *Registry) Entries() []cardmark.StrategyEntry {
	entries := make([]cardmark.StrategyEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Default returns the fallback strategy.
func (r *Registry) Default() cardmark.Strategy {
	return r.fallback
}

// NewSiteRegistry returns a Registry with the default strategy as fallback
// and the built-in site strategies registered in order. The converter renders
// Stack Overflow question bodies.
func NewSiteRegistry(converter cardmark.Converter) *Registry {
	r := NewRegistry(NewDefaultStrategy())
	r.Register(cardmark.HostContains("news.ycombinator.com"), NewHackerNewsStrategy())
	r.Register(cardmark.HostContains("youtube.com"), NewYouTubeStrategy())
	r.Register(cardmark.HostSuffix("wikipedia.org"), NewWikipediaStrategy())
	r.Register(cardmark.HostSuffix("github.com"), NewGitHubStrategy())
	r.Register(cardmark.HostSuffix("reddit.com"), NewRedditStrategy())
	r.Register(cardmark.HostSuffix("stackoverflow.com"), NewStackOverflowStrategy(converter))
	return r
}
