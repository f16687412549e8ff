package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/cardmark"
)

// CardsPath is the card API collection path, relative to the base URL.
const CardsPath = "/api/cards/"

// DefaultBaseURL is the card API location used when none is configured.
const DefaultBaseURL = "http://localhost"

// Ensure CardClient implements cardmark.Deliverer at compile time.
var _ cardmark.Deliverer = (*CardClient)(nil)

// CardClient posts cards to the remote card API.
// CardClient is safe for concurrent use by multiple goroutines.
type CardClient struct {
	client  *http.Client
	baseURL string
}

// NewCardClient creates a new CardClient for the API at baseURL
// (scheme, host and optional port, e.g. "http://localhost:8000").
func NewCardClient(baseURL string, opts ...Option) *CardClient {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &CardClient{
		client:  &http.Client{Timeout: o.timeout},
		baseURL: baseURL,
	}
}

// Endpoint returns the URL cards are posted to.
func (c *CardClient) Endpoint() string {
	return c.baseURL + CardsPath
}

// Send posts card as JSON. Any 2xx status is Delivered and the response
// body is ignored; other statuses are Rejected; failures to complete the
// request, including timeouts, are TransportFailure.
func (c *CardClient) Send(ctx context.Context, card *cardmark.Card) cardmark.Outcome {
	body, err := json.Marshal(card)
	if err != nil {
		return cardmark.Outcome{Kind: cardmark.TransportFailure, Err: fmt.Errorf("encoding card: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return cardmark.Outcome{Kind: cardmark.TransportFailure, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return cardmark.Outcome{Kind: cardmark.TransportFailure, Err: err}
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return cardmark.Outcome{Kind: cardmark.Rejected, Status: resp.StatusCode}
	}
	return cardmark.Outcome{Kind: cardmark.Delivered, Status: resp.StatusCode}
}
