package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cardmark"
)

// Ensure LoggingDeliverer implements cardmark.Deliverer.
var _ cardmark.Deliverer = (*LoggingDeliverer)(nil)

// LoggingDeliverer wraps a Deliverer with debug logging.
type LoggingDeliverer struct {
	next   cardmark.Deliverer
	logger *slog.Logger
}

// NewLoggingDeliverer creates a new LoggingDeliverer.
func NewLoggingDeliverer(next cardmark.Deliverer, logger *slog.Logger) *LoggingDeliverer {
	return &LoggingDeliverer{next: next, logger: logger}
}

// Send delegates to the wrapped deliverer and logs the outcome.
func (d *LoggingDeliverer) Send(ctx context.Context, card *cardmark.Card) (outcome cardmark.Outcome) {
	defer func(begin time.Time) {
		d.logger.Debug("send card",
			"src", card.Src,
			"bytes", len(card.Text),
			"outcome", outcome.String(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Send(ctx, card)
}
