package goquery

import "github.com/fwojciec/cardmark"

var _ cardmark.Strategy = (*SiteStrategy)(nil)

// SiteStrategy augments the default extraction with site-specific
// selectors. Each selector list is tried in order and the first element
// with non-empty trimmed text wins; when nothing matches, the default
// strategy's value is kept.
//
// New sites are added by declaring a SiteStrategy, never by editing an
// existing one.
type SiteStrategy struct {
	ID             string
	TitleSelectors []string
	TextSelectors  []string
}

// Name returns the strategy's identifier.
func (s *SiteStrategy) Name() string {
	return s.ID
}

// Extract runs the default extraction and applies the site overrides.
func (s *SiteStrategy) Extract(html string, domain string) cardmark.ExtractResult {
	doc := parse(html)
	result := baseResult(doc)

	if title := firstText(doc, s.TitleSelectors); title != "" {
		result.Title = title
	}
	if text := firstText(doc, s.TextSelectors); text != "" {
		result.Text = text
	}

	return result
}

// NewHackerNewsStrategy returns the strategy for news.ycombinator.com:
// the story title, then the story text, or the first comment when the
// story has no text.
func NewHackerNewsStrategy() *SiteStrategy {
	return &SiteStrategy{
		ID:             "hackernews",
		TitleSelectors: []string{".titleline > a"},
		TextSelectors:  []string{".toptext", ".comment"},
	}
}

// NewYouTubeStrategy returns the strategy for youtube.com video pages.
func NewYouTubeStrategy() *SiteStrategy {
	return &SiteStrategy{
		ID: "youtube",
		TextSelectors: []string{
			"#description-inline-expander",
			".ytd-video-secondary-info-renderer #description",
		},
	}
}

// NewWikipediaStrategy returns the strategy for wikipedia.org articles:
// the article heading and its lead paragraph.
func NewWikipediaStrategy() *SiteStrategy {
	return &SiteStrategy{
		ID:             "wikipedia",
		TitleSelectors: []string{"#firstHeading"},
		TextSelectors:  []string{"#mw-content-text .mw-parser-output > p:not(.mw-empty-elt)"},
	}
}

// NewGitHubStrategy returns the strategy for github.com repositories:
// the repository description, then the README lead paragraph.
func NewGitHubStrategy() *SiteStrategy {
	return &SiteStrategy{
		ID: "github",
		TextSelectors: []string{
			".BorderGrid-cell p.f4",
			"article.markdown-body > p",
		},
	}
}

// NewRedditStrategy returns the strategy for reddit.com posts.
func NewRedditStrategy() *SiteStrategy {
	return &SiteStrategy{
		ID:             "reddit",
		TitleSelectors: []string{`h1[slot="title"]`, "shreddit-post h1"},
		TextSelectors:  []string{`shreddit-post div[slot="text-body"]`, `[data-test-id="post-content"] .md`},
	}
}
