package cardmark

import (
	"context"
	"time"
)

// Journal outcome values. OutcomeAborted marks runs that ended before a
// card was built.
const (
	OutcomeDelivered        = "delivered"
	OutcomeRejected         = "rejected"
	OutcomeTransportFailure = "transport_failure"
	OutcomeAborted          = "aborted"
)

// Capture is the journal record of one run.
type Capture struct {
	ID         string    `json:"id"`
	BookmarkID string    `json:"bookmarkId"`
	Src        string    `json:"src"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	TextHash   string    `json:"textHash"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status"`
	Error      string    `json:"error"`
	Degraded   bool      `json:"degraded"`
	CapturedAt time.Time `json:"capturedAt"`
}

// Validate returns an error if the capture contains invalid fields.
func (c *Capture) Validate() error {
	if c.Src == "" {
		return Errorf(EINVALID, "capture source URL required")
	}
	switch c.Outcome {
	case OutcomeDelivered, OutcomeRejected, OutcomeTransportFailure, OutcomeAborted:
	default:
		return Errorf(EINVALID, "unknown capture outcome %q", c.Outcome)
	}
	return nil
}

// CaptureService records the outcome of runs. It is a diagnostic journal,
// not a retry queue: nothing is re-sent from it.
type CaptureService interface {
	// CreateCapture stores a capture, assigning its ID and timestamp.
	CreateCapture(ctx context.Context, c *Capture) error

	// FindCaptures returns captures matching the filter, newest first.
	FindCaptures(ctx context.Context, filter CaptureFilter) ([]*Capture, error)

	// DeleteCaptures removes captures recorded before the given time
	// and returns the number removed.
	DeleteCaptures(ctx context.Context, before time.Time) (int, error)
}

// CaptureFilter represents a filter for FindCaptures.
type CaptureFilter struct {
	Src     *string `json:"src"`
	Outcome *string `json:"outcome"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// URLSet is a probabilistic set of source URLs.
// Test may report false positives but never false negatives.
type URLSet interface {
	Add(url string)
	Test(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
