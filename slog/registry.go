package slog

import (
	"log/slog"

	"github.com/fwojciec/cardmark"
)

// Ensure LoggingRegistry implements cardmark.StrategyRegistry.
var _ cardmark.StrategyRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a StrategyRegistry with debug logging for strategy
// resolution.
type LoggingRegistry struct {
	next   cardmark.StrategyRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next cardmark.StrategyRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(matcher cardmark.DomainMatcher, strategy cardmark.Strategy) {
	r.next.Register(matcher, strategy)
}

// Resolve delegates to the wrapped registry and logs the selected strategy.
func (r *LoggingRegistry) Resolve(domain string) cardmark.Strategy {
	strategy := r.next.Resolve(domain)
	r.logger.Debug("strategy resolved",
		"domain", domain,
		"strategy", strategy.Name(),
	)
	return strategy
}

// Entries delegates to the wrapped registry.
func (r *LoggingRegistry) Entries() []cardmark.StrategyEntry {
	return r.next.Entries()
}
