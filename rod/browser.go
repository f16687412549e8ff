// Package rod drives Chrome over the DevTools protocol to find the tab
// holding a new bookmark and to run extraction strategies against its
// live document.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/cardmark"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultPageTimeout bounds each DevTools operation on a page.
const DefaultPageTimeout = 10 * time.Second

// DefaultControlURL is the DevTools endpoint of a Chrome started with
// --remote-debugging-port=9222.
const DefaultControlURL = "http://127.0.0.1:9222"

// Browser is a DevTools connection to Chrome. It either attaches to the
// user's running browser (WithControlURL) or launches a headless one.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	cancel      context.CancelFunc
	pageTimeout time.Duration
	controlURL  string
	mu          sync.Mutex
	closed      atomic.Bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithControlURL attaches to the browser listening at u (an http:// DevTools
// address or a ws:// debugger URL) instead of launching one.
func WithControlURL(u string) Option {
	return func(b *Browser) {
		b.controlURL = u
	}
}

// WithPageTimeout sets the timeout for operations on a single page.
// Defaults to DefaultPageTimeout (10s) if not specified.
func WithPageTimeout(d time.Duration) Option {
	return func(b *Browser) {
		b.pageTimeout = d
	}
}

// NewBrowser connects to Chrome. Close must be called when the Browser is
// no longer needed.
//
// Returns an error if the browser cannot be reached or launched.
func NewBrowser(opts ...Option) (*Browser, error) {
	b := &Browser{pageTimeout: DefaultPageTimeout}
	for _, opt := range opts {
		opt(b)
	}

	if b.controlURL != "" {
		if err := b.attach(); err != nil {
			return nil, err
		}
		return b, nil
	}

	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// attach connects to an already running browser.
func (b *Browser) attach() error {
	u, err := launcher.ResolveURL(b.controlURL)
	if err != nil {
		return fmt.Errorf("resolving DevTools URL %q: %w", b.controlURL, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		cancel()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.cancel = cancel
	return nil
}

// launch starts a headless browser with stability flags.
func (b *Browser) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = lnchr
	return nil
}

// Close releases browser resources. An attached browser is only
// disconnected, never shut down. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
		return nil
	}

	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return err
}

// LauncherPID returns the process ID of a launched browser, or 0 when
// attached.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

// conn returns the underlying browser bound to ctx.
func (b *Browser) conn(ctx context.Context) (*rod.Browser, error) {
	if b.closed.Load() {
		return nil, cardmark.Errorf(cardmark.EINVALID, "browser is closed")
	}
	return b.browser.Context(ctx), nil
}

// page returns the page for a tab ID bound to ctx. Callers bound their
// work with pageContext.
func (b *Browser) page(ctx context.Context, id string) (*rod.Page, error) {
	browser, err := b.conn(ctx)
	if err != nil {
		return nil, err
	}
	page, err := browser.PageFromTarget(proto.TargetTargetID(id))
	if err != nil {
		return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "tab %s is gone: %v", id, err)
	}
	return page.Context(ctx), nil
}

// pageContext derives a context limited by the page timeout.
func (b *Browser) pageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.pageTimeout)
}

// windowID returns the browser window holding the page, or 0 if unknown.
func (b *Browser) windowID(ctx context.Context, page *rod.Page) int {
	browser, err := b.conn(ctx)
	if err != nil {
		return 0
	}
	res, err := proto.BrowserGetWindowForTarget{TargetID: page.TargetID}.Call(browser)
	if err != nil {
		return 0
	}
	return int(res.WindowID)
}
