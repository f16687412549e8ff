package rod

import (
	"context"
	"strings"

	"github.com/fwojciec/cardmark"
)

// Ensure Sandbox implements cardmark.Sandbox at compile time.
var _ cardmark.Sandbox = (*Sandbox)(nil)

// Sandbox runs strategies against the live DOM of a browser tab. The
// strategy sees a serialization of the rendered document, taken at call
// time, and nothing of the caller's state.
type Sandbox struct {
	browser *Browser
}

// NewSandbox creates a new Sandbox.
func NewSandbox(browser *Browser) *Sandbox {
	return &Sandbox{browser: browser}
}

// Run executes strategy against the document loaded in tab.
// Returns EUNAVAILABLE if the tab is gone, shows a privileged page
// (chrome://, about:, extensions) or its document cannot be read.
func (s *Sandbox) Run(ctx context.Context, tab *cardmark.Tab, strategy cardmark.Strategy, domain string) (*cardmark.ExtractResult, error) {
	ctx, cancel := s.browser.pageContext(ctx)
	defer cancel()

	page, err := s.browser.page(ctx, tab.ID)
	if err != nil {
		return nil, err
	}

	info, err := page.Info()
	if err != nil {
		return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "tab %s: %v", tab.ID, err)
	}
	if !isWebPage(info.URL) {
		return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "document of %q is not accessible", info.URL)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "reading document of tab %s: %v", tab.ID, err)
	}

	result := strategy.Extract(html, domain)
	return &result, nil
}

func isWebPage(u string) bool {
	u = strings.ToLower(u)
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
