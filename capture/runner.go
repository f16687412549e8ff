// Package capture runs the bookmark capture pipeline: tab resolution,
// strategy extraction, card building and delivery, one independent run per
// bookmark event.
package capture

import (
	"context"

	"github.com/fwojciec/cardmark"
)

// Ensure Runner implements cardmark.PageExtractor at compile time.
var _ cardmark.PageExtractor = (*Runner)(nil)

// Runner selects the strategy for a domain and executes it in a sandbox
// bound to the tab.
type Runner struct {
	strategies cardmark.StrategyRegistry
	sandbox    cardmark.Sandbox
}

// NewRunner creates a new Runner.
func NewRunner(strategies cardmark.StrategyRegistry, sandbox cardmark.Sandbox) *Runner {
	return &Runner{strategies: strategies, sandbox: sandbox}
}

// Extract runs the strategy registered for domain against the page in tab.
// Inaccessible documents and failing strategies are reported as
// EUNAVAILABLE so callers can degrade instead of aborting.
func (r *Runner) Extract(ctx context.Context, tab *cardmark.Tab, domain string) (result *cardmark.ExtractResult, err error) {
	strategy := r.strategies.Resolve(domain)

	defer func() {
		if v := recover(); v != nil {
			result = nil
			err = cardmark.Errorf(cardmark.EUNAVAILABLE, "strategy %s failed: %v", strategy.Name(), v)
		}
	}()

	result, err = r.sandbox.Run(ctx, tab, strategy, domain)
	if err != nil {
		if cardmark.ErrorCode(err) == cardmark.EINTERNAL {
			return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "document inaccessible: %v", err)
		}
		return nil, err
	}
	if result == nil {
		return nil, cardmark.Errorf(cardmark.EUNAVAILABLE, "strategy %s returned no result", strategy.Name())
	}
	return result, nil
}
