// Package bloom provides the delivered-source pre-check using Bloom filters.
package bloom

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/cardmark"
)

var _ cardmark.URLSet = (*Filter)(nil)

// loadPageSize is the number of captures read per journal query in Load.
const loadPageSize = 500

// Filter wraps a Bloom filter of source URLs. It is safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}

// Load adds the source of every delivered capture in the journal and
// returns the number of captures read.
func (f *Filter) Load(ctx context.Context, captures cardmark.CaptureService) (int, error) {
	outcome := cardmark.OutcomeDelivered
	var n int
	for {
		page, err := captures.FindCaptures(ctx, cardmark.CaptureFilter{
			Outcome: &outcome,
			Offset:  n,
			Limit:   loadPageSize,
		})
		if err != nil {
			return n, err
		}
		for _, c := range page {
			f.Add(c.Src)
		}
		n += len(page)
		if len(page) < loadPageSize {
			return n, nil
		}
	}
}
