package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cardmark"
	"github.com/google/uuid"
)

// Pipeline captures a single bookmark. Stages run strictly in order:
// tab resolution, extraction, card building, delivery.
//
// A Pipeline holds no per-run state and may run concurrently.
type Pipeline struct {
	Tabs      cardmark.TabResolver
	Extractor cardmark.PageExtractor
	Deliverer cardmark.Deliverer

	// Optional collaborators.
	Captures cardmark.CaptureService
	Archive  cardmark.CardWriter
	Logger   *slog.Logger

	// DeliveryTimeout bounds the delivery call when positive.
	DeliveryTimeout time.Duration
}

// Result holds the outcome of a run that reached delivery.
type Result struct {
	RunID   string
	Card    *cardmark.Card
	Outcome cardmark.Outcome

	// Degraded is set when extraction failed and the card carries no
	// extracted content.
	Degraded bool
}

// Run executes the pipeline for event.
//
// It returns an error only when the run is aborted before a card is built:
// EINVALID for unusable events and ENOTFOUND when no tab holds the page.
// Extraction failures degrade the card; delivery failures are reported in
// Result.Outcome. Every abort, degradation and outcome is logged.
func (p *Pipeline) Run(ctx context.Context, event *cardmark.BookmarkEvent) (*Result, error) {
	runID := uuid.NewString()
	log := p.logger().With("run", runID, "bookmark", event.ID, "url", event.URL)
	log.Debug("run started")

	if err := event.Validate(); err != nil {
		log.Error("run aborted", "stage", "validate", "err", err)
		p.record(ctx, log, abortedCapture(event, err))
		return nil, err
	}

	tab, err := p.Tabs.ResolveTab(ctx, event)
	if err != nil {
		log.Error("run aborted", "stage", "resolve", "err", err)
		p.record(ctx, log, abortedCapture(event, err))
		return nil, err
	}

	domain := event.Domain()
	extracted, err := p.Extractor.Extract(ctx, tab, domain)
	degraded := err != nil
	if err != nil {
		log.Warn("extraction failed, capturing without content", "tab", tab.ID, "domain", domain, "err", err)
		extracted = nil
	}

	if err := p.Tabs.ReleaseTab(ctx, tab); err != nil {
		log.Warn("releasing tab", "tab", tab.ID, "err", err)
	}

	card := cardmark.BuildCard(event, tab, extracted)
	outcome := p.send(ctx, card)

	switch outcome.Kind {
	case cardmark.Delivered:
		log.Info("card delivered", "status", outcome.Status, "title", card.Title, "degraded", degraded)
	case cardmark.Rejected:
		log.Error("card rejected", "status", outcome.Status, "title", card.Title)
	default:
		log.Error("card delivery failed", "err", outcome.Err)
	}

	if outcome.OK() && p.Archive != nil {
		if err := p.Archive.WriteCard(ctx, card); err != nil {
			log.Warn("archiving card", "err", err)
		}
	}

	p.record(ctx, log, deliveredCapture(event, card, outcome, degraded))

	return &Result{
		RunID:    runID,
		Card:     card,
		Outcome:  outcome,
		Degraded: degraded,
	}, nil
}

func (p *Pipeline) send(ctx context.Context, card *cardmark.Card) cardmark.Outcome {
	if p.DeliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.DeliveryTimeout)
		defer cancel()
	}
	return p.Deliverer.Send(ctx, card)
}

// record journals the run. Journal failures never change the outcome.
func (p *Pipeline) record(ctx context.Context, log *slog.Logger, c *cardmark.Capture) {
	if p.Captures == nil {
		return
	}
	if err := p.Captures.CreateCapture(ctx, c); err != nil {
		log.Warn("recording capture", "err", err)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func abortedCapture(event *cardmark.BookmarkEvent, err error) *cardmark.Capture {
	return &cardmark.Capture{
		BookmarkID: event.ID,
		Src:        event.URL,
		Outcome:    cardmark.OutcomeAborted,
		Error:      err.Error(),
	}
}

func deliveredCapture(event *cardmark.BookmarkEvent, card *cardmark.Card, outcome cardmark.Outcome, degraded bool) *cardmark.Capture {
	c := &cardmark.Capture{
		BookmarkID: event.ID,
		Src:        card.Src,
		Title:      card.Title,
		Text:       card.Text,
		Outcome:    outcome.Kind.String(),
		Status:     outcome.Status,
		Degraded:   degraded,
	}
	if outcome.Err != nil {
		c.Error = outcome.Err.Error()
	}
	return c
}
