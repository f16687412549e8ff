// Package http provides the HTTP side of cardmark: the card API client and
// a browserless sandbox that fetches static pages for extraction.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/cardmark"
)

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultPageTimeout (10s).
const DefaultTimeout = 10 * time.Second

// maxPageBytes bounds how much of a page is read for extraction.
const maxPageBytes = 5 << 20

type options struct {
	timeout time.Duration
}

// Option configures a CardClient or Sandbox.
type Option func(*options)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Ensure Sandbox implements cardmark.Sandbox at compile time.
var _ cardmark.Sandbox = (*Sandbox)(nil)

// Sandbox runs strategies against pages fetched over plain HTTP.
// Unlike rod.Sandbox, it does not execute JavaScript and sees the page as
// served, which suits static sites and bulk imports without a browser.
type Sandbox struct {
	client *http.Client
}

// NewSandbox creates a new HTTP-based Sandbox.
func NewSandbox(opts ...Option) *Sandbox {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sandbox{client: &http.Client{Timeout: o.timeout}}
}

// Run fetches tab.URL and executes strategy on the response body.
// Returns EUNAVAILABLE when the page cannot be fetched.
func (s *Sandbox) Run(ctx context.Context, tab *cardmark.Tab, strategy cardmark.Strategy, domain string) (*cardmark.ExtractResult, error) {
	html, err := s.fetch(ctx, tab.URL)
	if err != nil {
		return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "document inaccessible: %v", err)
	}

	result := strategy.Extract(html, domain)
	return &result, nil
}

func (s *Sandbox) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Ensure TabResolver implements cardmark.TabResolver at compile time.
var _ cardmark.TabResolver = (*TabResolver)(nil)

// TabResolver stands in for a browser when running without one. The tab it
// returns points at the bookmarked URL and has no title of its own.
type TabResolver struct{}

// NewTabResolver creates a new TabResolver.
func NewTabResolver() *TabResolver {
	return &TabResolver{}
}

// ResolveTab returns a synthetic tab for the bookmarked URL.
func (r *TabResolver) ResolveTab(ctx context.Context, event *cardmark.BookmarkEvent) (*cardmark.Tab, error) {
	if event.URL == "" {
		return nil, cardmark.Errorf(cardmark.ENOTFOUND, "no tab for bookmark %q", event.ID)
	}
	return &cardmark.Tab{ID: event.ID, URL: event.URL}, nil
}

// ReleaseTab is a no-op.
func (r *TabResolver) ReleaseTab(ctx context.Context, tab *cardmark.Tab) error {
	return nil
}
