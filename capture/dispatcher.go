package capture

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/cardmark"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of runs a Dispatcher executes at once
// when Concurrency is not set.
const DefaultConcurrency = 4

// Dispatcher starts pipeline runs for bookmark events. Each run is
// independent: a failing run never affects the ones after it.
type Dispatcher struct {
	Pipeline    *Pipeline
	Concurrency int

	// Optional collaborators used by RunAll.
	Limiter  cardmark.DomainLimiter
	Seen     cardmark.URLSet
	Captures cardmark.CaptureService

	Logger *slog.Logger

	once sync.Once
	sem  chan struct{}
	wg   sync.WaitGroup
}

// Summary counts the outcomes of a bulk run.
type Summary struct {
	Delivered int
	Rejected  int
	Failed    int
	Aborted   int
	Skipped   int
	Degraded  int
}

// Total returns the number of events accounted for.
func (s *Summary) Total() int {
	return s.Delivered + s.Rejected + s.Failed + s.Aborted + s.Skipped
}

// ProgressEvent reports progress during a bulk run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Outcome   string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting bulk run progress.
type ProgressFunc func(event ProgressEvent)

// Handle starts a run for event in its own goroutine and returns
// immediately. Once started, a run completes even if ctx is canceled.
func (d *Dispatcher) Handle(ctx context.Context, event *cardmark.BookmarkEvent) {
	d.init()
	runCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		d.sem <- struct{}{}
		defer func() { <-d.sem }()

		defer func() {
			if v := recover(); v != nil {
				d.logger().Error("run panicked", "url", event.URL, "panic", v)
			}
		}()

		// Aborts are logged by the pipeline.
		_, _ = d.Pipeline.Run(runCtx, event)
	}()
}

// dedupeEvents splits events into the first occurrence of each URL and
// the repeats that follow it.
func dedupeEvents(events []*cardmark.BookmarkEvent) (unique, repeated []*cardmark.BookmarkEvent) {
	seen := make(map[string]bool, len(events))
	for _, event := range events {
		if seen[event.URL] {
			repeated = append(repeated, event)
			continue
		}
		seen[event.URL] = true
		unique = append(unique, event)
	}
	return unique, repeated
}

// Wait blocks until every run started by Handle has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// RunAll captures every event and returns once all runs have finished.
// Repeated URLs are skipped after their first occurrence. Sources with a
// delivered capture are skipped unless Seen is nil.
// The progress callback, if provided, receives events as runs complete.
func (d *Dispatcher) RunAll(ctx context.Context, events []*cardmark.BookmarkEvent, progress ProgressFunc) (*Summary, error) {
	total := len(events)
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	var (
		mu       sync.Mutex
		summary  Summary
		progMu   sync.Mutex
		complete atomic.Int64
	)
	report := func(e ProgressEvent) {
		e.Completed = int(complete.Add(1))
		e.Total = total
		progMu.Lock()
		progress(e)
		progMu.Unlock()
	}

	unique, repeated := dedupeEvents(events)
	for _, event := range repeated {
		summary.Skipped++
		report(ProgressEvent{Type: ProgressSkipped, URL: event.URL})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency())

	for _, event := range unique {
		g.Go(func() error {
			if d.delivered(gctx, event.URL) {
				mu.Lock()
				summary.Skipped++
				mu.Unlock()
				report(ProgressEvent{Type: ProgressSkipped, URL: event.URL})
				return nil
			}

			if d.Limiter != nil && event.Validate() == nil {
				if err := d.Limiter.Wait(gctx, event.Domain()); err != nil {
					return err
				}
			}

			result, err := d.Pipeline.Run(gctx, event)

			mu.Lock()
			switch {
			case err != nil:
				summary.Aborted++
			case result.Outcome.Kind == cardmark.Delivered:
				summary.Delivered++
			case result.Outcome.Kind == cardmark.Rejected:
				summary.Rejected++
			default:
				summary.Failed++
			}
			if err == nil && result.Degraded {
				summary.Degraded++
			}
			mu.Unlock()

			if err != nil {
				report(ProgressEvent{Type: ProgressFailed, URL: event.URL, Outcome: cardmark.OutcomeAborted, Error: err})
				return nil
			}
			if result.Outcome.OK() && d.Seen != nil {
				d.Seen.Add(result.Card.Src)
			}
			e := ProgressEvent{Type: ProgressCompleted, URL: event.URL, Outcome: result.Outcome.Kind.String()}
			if !result.Outcome.OK() {
				e.Type = ProgressFailed
				e.Error = outcomeError(result.Outcome)
			}
			report(e)
			return nil
		})
	}

	err := g.Wait()
	progress(ProgressEvent{Type: ProgressFinished, Completed: int(complete.Load()), Total: total})
	return &summary, err
}

// delivered reports whether src already has a delivered capture. The URL
// set answers first; positives are confirmed against the journal because
// the set may report false positives.
func (d *Dispatcher) delivered(ctx context.Context, src string) bool {
	if d.Seen == nil || !d.Seen.Test(src) {
		return false
	}
	if d.Captures == nil {
		return true
	}
	outcome := cardmark.OutcomeDelivered
	captures, err := d.Captures.FindCaptures(ctx, cardmark.CaptureFilter{Src: &src, Outcome: &outcome, Limit: 1})
	if err != nil {
		d.logger().Warn("checking capture journal", "url", src, "err", err)
		return false
	}
	return len(captures) > 0
}

func (d *Dispatcher) init() {
	d.once.Do(func() {
		d.sem = make(chan struct{}, d.concurrency())
	})
}

func (d *Dispatcher) concurrency() int {
	if d.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return d.Concurrency
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

func outcomeError(o cardmark.Outcome) error {
	if o.Err != nil {
		return o.Err
	}
	return cardmark.Errorf(cardmark.EUNAVAILABLE, "%s", o.String())
}
