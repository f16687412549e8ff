package mock

import (
	"context"

	"github.com/fwojciec/cardmark"
)

var _ cardmark.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of cardmark.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(html string, domain string) cardmark.ExtractResult
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(html string, domain string) cardmark.ExtractResult {
	return s.ExtractFn(html, domain)
}

var _ cardmark.StrategyRegistry = (*StrategyRegistry)(nil)

// StrategyRegistry is a mock implementation of cardmark.StrategyRegistry.
type StrategyRegistry struct {
	RegisterFn func(matcher cardmark.DomainMatcher, strategy cardmark.Strategy)
	ResolveFn  func(domain string) cardmark.Strategy
	EntriesFn  func() []cardmark.StrategyEntry
}

func (r *StrategyRegistry) Register(matcher cardmark.DomainMatcher, strategy cardmark.Strategy) {
	r.RegisterFn(matcher, strategy)
}

func (r *StrategyRegistry) Resolve(domain string) cardmark.Strategy {
	return r.ResolveFn(domain)
}

func (r *StrategyRegistry) Entries() []cardmark.StrategyEntry {
	return r.EntriesFn()
}

var _ cardmark.Sandbox = (*Sandbox)(nil)

// Sandbox is a mock implementation of cardmark.Sandbox.
type Sandbox struct {
	RunFn func(ctx context.Context, tab *cardmark.Tab, strategy cardmark.Strategy, domain string) (*cardmark.ExtractResult, error)
}

func (s *Sandbox) Run(ctx context.Context, tab *cardmark.Tab, strategy cardmark.Strategy, domain string) (*cardmark.ExtractResult, error) {
	return s.RunFn(ctx, tab, strategy, domain)
}

var _ cardmark.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of cardmark.PageExtractor.
type PageExtractor struct {
	ExtractFn func(ctx context.Context, tab *cardmark.Tab, domain string) (*cardmark.ExtractResult, error)
}

func (e *PageExtractor) Extract(ctx context.Context, tab *cardmark.Tab, domain string) (*cardmark.ExtractResult, error) {
	return e.ExtractFn(ctx, tab, domain)
}
