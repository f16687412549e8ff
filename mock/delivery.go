package mock

import (
	"context"

	"github.com/fwojciec/cardmark"
)

var _ cardmark.Deliverer = (*Deliverer)(nil)

// Deliverer is a mock implementation of cardmark.Deliverer.
type Deliverer struct {
	SendFn func(ctx context.Context, card *cardmark.Card) cardmark.Outcome
}

func (d *Deliverer) Send(ctx context.Context, card *cardmark.Card) cardmark.Outcome {
	return d.SendFn(ctx, card)
}

var _ cardmark.CardWriter = (*CardWriter)(nil)

// CardWriter is a mock implementation of cardmark.CardWriter.
type CardWriter struct {
	WriteCardFn func(ctx context.Context, card *cardmark.Card) error
}

func (w *CardWriter) WriteCard(ctx context.Context, card *cardmark.Card) error {
	return w.WriteCardFn(ctx, card)
}
