package cardmark

import (
	"context"
	"fmt"
)

// OutcomeKind classifies the result of delivering a card.
type OutcomeKind int

const (
	// Delivered means the API answered with a 2xx status.
	Delivered OutcomeKind = iota
	// Rejected means the API answered with a non-2xx status.
	Rejected
	// TransportFailure means the request did not complete.
	TransportFailure
)

// String returns the journal name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case Delivered:
		return OutcomeDelivered
	case Rejected:
		return OutcomeRejected
	case TransportFailure:
		return OutcomeTransportFailure
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the terminal result of a delivery attempt.
type Outcome struct {
	Kind OutcomeKind

	// Status is the HTTP status code for Delivered and Rejected outcomes.
	Status int

	// Err is the transport cause for TransportFailure outcomes.
	Err error
}

// OK reports whether the card was delivered.
func (o Outcome) OK() bool {
	return o.Kind == Delivered
}

func (o Outcome) String() string {
	switch o.Kind {
	case Rejected:
		return fmt.Sprintf("rejected(%d)", o.Status)
	case TransportFailure:
		return fmt.Sprintf("transport failure: %v", o.Err)
	default:
		return o.Kind.String()
	}
}

// Deliverer sends cards to the remote card API.
type Deliverer interface {
	// Send performs a single delivery attempt. It never retries and
	// never mutates card.
	Send(ctx context.Context, card *Card) Outcome
}
