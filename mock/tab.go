package mock

import (
	"context"

	"github.com/fwojciec/cardmark"
)

var _ cardmark.TabResolver = (*TabResolver)(nil)

// TabResolver is a mock implementation of cardmark.TabResolver.
// A nil ReleaseTabFn is treated as a no-op.
type TabResolver struct {
	ResolveTabFn func(ctx context.Context, event *cardmark.BookmarkEvent) (*cardmark.Tab, error)
	ReleaseTabFn func(ctx context.Context, tab *cardmark.Tab) error
}

func (r *TabResolver) ResolveTab(ctx context.Context, event *cardmark.BookmarkEvent) (*cardmark.Tab, error) {
	return r.ResolveTabFn(ctx, event)
}

func (r *TabResolver) ReleaseTab(ctx context.Context, tab *cardmark.Tab) error {
	if r.ReleaseTabFn == nil {
		return nil
	}
	return r.ReleaseTabFn(ctx, tab)
}
