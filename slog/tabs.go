// Package slog provides logging decorators for cardmark services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cardmark"
)

// Ensure LoggingTabResolver implements cardmark.TabResolver.
var _ cardmark.TabResolver = (*LoggingTabResolver)(nil)

// LoggingTabResolver wraps a TabResolver with debug logging.
type LoggingTabResolver struct {
	next   cardmark.TabResolver
	logger *slog.Logger
}

// NewLoggingTabResolver creates a new LoggingTabResolver.
func NewLoggingTabResolver(next cardmark.TabResolver, logger *slog.Logger) *LoggingTabResolver {
	return &LoggingTabResolver{next: next, logger: logger}
}

// ResolveTab delegates to the wrapped resolver and logs the chosen tab.
func (r *LoggingTabResolver) ResolveTab(ctx context.Context, event *cardmark.BookmarkEvent) (tab *cardmark.Tab, err error) {
	defer func(begin time.Time) {
		var tabID string
		if tab != nil {
			tabID = tab.ID
		}
		r.logger.Debug("resolve tab",
			"url", event.URL,
			"tab", tabID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveTab(ctx, event)
}

// ReleaseTab delegates to the wrapped resolver.
func (r *LoggingTabResolver) ReleaseTab(ctx context.Context, tab *cardmark.Tab) error {
	return r.next.ReleaseTab(ctx, tab)
}
