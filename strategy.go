package cardmark

import (
	"context"
	"strings"
)

// ExtractResult holds the title/text summary a Strategy produced.
// Both fields are always present; an empty Text means no content was found.
type ExtractResult struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Strategy extracts a title/text summary from a page's rendered document.
// Implementations must be pure: they read only the document they are given
// and never fail. Missing elements produce empty fields.
type Strategy interface {
	// Name returns the strategy's identifier (e.g., "default", "hackernews").
	Name() string

	// Extract reads the rendered HTML of a page served from domain.
	Extract(html string, domain string) ExtractResult
}

// MatchKind selects how a DomainMatcher compares hostnames.
type MatchKind int

const (
	// MatchContains matches when the hostname contains the pattern.
	MatchContains MatchKind = iota
	// MatchSuffix matches the pattern itself and any of its subdomains.
	MatchSuffix
)

// DomainMatcher is a simple hostname predicate. Matching is case-insensitive.
type DomainMatcher struct {
	Kind    MatchKind
	Pattern string
}

// HostContains returns a matcher for hostnames containing pattern.
func HostContains(pattern string) DomainMatcher {
	return DomainMatcher{Kind: MatchContains, Pattern: strings.ToLower(pattern)}
}

// HostSuffix returns a matcher for pattern and its subdomains.
func HostSuffix(pattern string) DomainMatcher {
	return DomainMatcher{Kind: MatchSuffix, Pattern: strings.ToLower(strings.TrimPrefix(pattern, "."))}
}

// Match reports whether domain satisfies the matcher.
func (m DomainMatcher) Match(domain string) bool {
	if m.Pattern == "" {
		return false
	}
	domain = strings.ToLower(domain)
	switch m.Kind {
	case MatchSuffix:
		return domain == m.Pattern || strings.HasSuffix(domain, "."+m.Pattern)
	default:
		return strings.Contains(domain, m.Pattern)
	}
}

// String describes the matcher for display.
func (m DomainMatcher) String() string {
	if m.Kind == MatchSuffix {
		return "*." + m.Pattern
	}
	return "*" + m.Pattern + "*"
}

// StrategyEntry pairs a domain predicate with the strategy it selects.
type StrategyEntry struct {
	Matcher  DomainMatcher
	Strategy Strategy
}

// StrategyRegistry maps domains to extraction strategies.
//
// Registration happens during initialization; afterwards the registry is
// read-only and Resolve is safe for concurrent use.
type StrategyRegistry interface {
	// Register appends a strategy. Earlier registrations win when
	// several matchers accept the same domain.
	Register(matcher DomainMatcher, strategy Strategy)

	// Resolve returns the first registered strategy matching domain,
	// or the default strategy when none matches.
	Resolve(domain string) Strategy

	// Entries returns the registrations in order.
	Entries() []StrategyEntry
}

// Sandbox executes a strategy against the live document of a tab.
// The strategy receives the rendered document and the domain and
// communicates only through its return value.
type Sandbox interface {
	// Run executes strategy in the context of tab.
	// Returns EUNAVAILABLE if the tab's document cannot be read.
	Run(ctx context.Context, tab *Tab, strategy Strategy, domain string) (*ExtractResult, error)
}

// PageExtractor selects and runs the extraction strategy for a tab.
type PageExtractor interface {
	// Extract returns the summary of the page loaded in tab.
	// Returns EUNAVAILABLE if the document is inaccessible or the strategy failed.
	Extract(ctx context.Context, tab *Tab, domain string) (*ExtractResult, error)
}
