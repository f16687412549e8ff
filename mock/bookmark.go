package mock

import (
	"context"

	"github.com/fwojciec/cardmark"
)

var _ cardmark.BookmarkSource = (*BookmarkSource)(nil)

// BookmarkSource is a mock implementation of cardmark.BookmarkSource.
type BookmarkSource struct {
	WatchFn func(ctx context.Context, fn cardmark.BookmarkHandler) error
}

func (s *BookmarkSource) Watch(ctx context.Context, fn cardmark.BookmarkHandler) error {
	return s.WatchFn(ctx, fn)
}
