package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cardmark"
)

// Ensure LoggingSandbox implements cardmark.Sandbox.
var _ cardmark.Sandbox = (*LoggingSandbox)(nil)

// LoggingSandbox wraps a Sandbox with debug logging.
type LoggingSandbox struct {
	next   cardmark.Sandbox
	logger *slog.Logger
}

// NewLoggingSandbox creates a new LoggingSandbox.
func NewLoggingSandbox(next cardmark.Sandbox, logger *slog.Logger) *LoggingSandbox {
	return &LoggingSandbox{next: next, logger: logger}
}

// Run logs the strategy execution and delegates to the wrapped sandbox.
func (s *LoggingSandbox) Run(ctx context.Context, tab *cardmark.Tab, strategy cardmark.Strategy, domain string) (result *cardmark.ExtractResult, err error) {
	defer func(begin time.Time) {
		var textLen int
		if result != nil {
			textLen = len(result.Text)
		}
		s.logger.Debug("extract",
			"url", tab.URL,
			"strategy", strategy.Name(),
			"domain", domain,
			"text", textLen,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Run(ctx, tab, strategy, domain)
}
