package rod

import (
	"context"
	"net/url"

	"github.com/fwojciec/cardmark"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// focusStateJS reports how the page relates to the user's attention.
const focusStateJS = `() => ({
	focused: document.hasFocus(),
	visible: document.visibilityState === "visible",
})`

// Ensure ActiveTabResolver implements cardmark.TabResolver at compile time.
var _ cardmark.TabResolver = (*ActiveTabResolver)(nil)

// ActiveTabResolver finds the tab the user bookmarked in an attached
// browser. It only observes tabs and never opens or closes them.
type ActiveTabResolver struct {
	browser *Browser
}

// NewActiveTabResolver creates a new ActiveTabResolver.
func NewActiveTabResolver(browser *Browser) *ActiveTabResolver {
	return &ActiveTabResolver{browser: browser}
}

// ResolveTab returns the active tab of the focused window.
//
// Among visible pages, a page showing the bookmarked URL wins, then the
// page whose document has focus, then the first visible page. Bookmarking
// moves focus to the browser's own UI, so focus alone is not reliable.
// Returns ENOTFOUND when no web page is visible.
func (r *ActiveTabResolver) ResolveTab(ctx context.Context, event *cardmark.BookmarkEvent) (*cardmark.Tab, error) {
	browser, err := r.browser.conn(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := browser.Pages()
	if err != nil {
		return nil, cardmark.Errorf(cardmark.ENOTFOUND, "no active tab found: %v", err)
	}

	var (
		best      *rod.Page
		bestInfo  *proto.TargetTargetInfo
		bestScore int
	)
	for _, page := range pages {
		info, err := page.Info()
		if err != nil || info.Type != proto.TargetTargetInfoTypePage {
			continue
		}

		evalCtx, cancel := r.browser.pageContext(ctx)
		state, err := page.Context(evalCtx).Eval(focusStateJS)
		cancel()
		if err != nil {
			continue
		}
		if !state.Value.Get("visible").Bool() {
			continue
		}

		score := 1
		if state.Value.Get("focused").Bool() {
			score = 2
		}
		if event != nil && sameURL(info.URL, event.URL) {
			score = 3
		}
		if score > bestScore {
			best, bestInfo, bestScore = page, info, score
		}
	}

	if best == nil {
		return nil, cardmark.Errorf(cardmark.ENOTFOUND, "no active tab found")
	}

	return &cardmark.Tab{
		ID:       string(best.TargetID),
		WindowID: r.browser.windowID(ctx, best),
		Title:    bestInfo.Title,
		URL:      bestInfo.URL,
	}, nil
}

// ReleaseTab is a no-op; the tab belongs to the user.
func (r *ActiveTabResolver) ReleaseTab(ctx context.Context, tab *cardmark.Tab) error {
	return nil
}

// Ensure OpenTabResolver implements cardmark.TabResolver at compile time.
var _ cardmark.TabResolver = (*OpenTabResolver)(nil)

// OpenTabResolver opens the bookmarked URL in a new tab, for bookmarks
// that are not open in any window (e.g., bulk imports). Tabs it opens are
// closed by ReleaseTab.
type OpenTabResolver struct {
	browser *Browser
}

// NewOpenTabResolver creates a new OpenTabResolver.
func NewOpenTabResolver(browser *Browser) *OpenTabResolver {
	return &OpenTabResolver{browser: browser}
}

// ResolveTab opens event.URL and waits for the page to load.
// Returns ENOTFOUND if the page cannot be opened.
func (r *OpenTabResolver) ResolveTab(ctx context.Context, event *cardmark.BookmarkEvent) (*cardmark.Tab, error) {
	browser, err := r.browser.conn(ctx)
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: event.URL})
	if err != nil {
		return nil, cardmark.Errorf(cardmark.ENOTFOUND, "opening tab for %s: %v", event.URL, err)
	}

	loadCtx, cancel := r.browser.pageContext(ctx)
	defer cancel()
	if err := page.Context(loadCtx).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, cardmark.Errorf(cardmark.ENOTFOUND, "loading %s: %v", event.URL, err)
	}

	tab := &cardmark.Tab{
		ID:       string(page.TargetID),
		WindowID: r.browser.windowID(ctx, page),
		URL:      event.URL,
	}
	if info, err := page.Info(); err == nil {
		tab.Title = info.Title
		tab.URL = info.URL
	}
	return tab, nil
}

// ReleaseTab closes a tab opened by ResolveTab.
func (r *OpenTabResolver) ReleaseTab(ctx context.Context, tab *cardmark.Tab) error {
	ctx, cancel := r.browser.pageContext(ctx)
	defer cancel()

	page, err := r.browser.page(ctx, tab.ID)
	if err != nil {
		return err
	}
	return page.Close()
}

// sameURL compares URLs ignoring fragments and a trailing slash.
func sameURL(a, b string) bool {
	return normalizeURL(a) == normalizeURL(b)
}

func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
