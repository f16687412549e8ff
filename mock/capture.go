package mock

import (
	"context"
	"time"

	"github.com/fwojciec/cardmark"
)

var _ cardmark.CaptureService = (*CaptureService)(nil)

// CaptureService is a mock implementation of cardmark.CaptureService.
type CaptureService struct {
	CreateCaptureFn  func(ctx context.Context, c *cardmark.Capture) error
	FindCapturesFn   func(ctx context.Context, filter cardmark.CaptureFilter) ([]*cardmark.Capture, error)
	DeleteCapturesFn func(ctx context.Context, before time.Time) (int, error)
}

func (s *CaptureService) CreateCapture(ctx context.Context, c *cardmark.Capture) error {
	return s.CreateCaptureFn(ctx, c)
}

func (s *CaptureService) FindCaptures(ctx context.Context, filter cardmark.CaptureFilter) ([]*cardmark.Capture, error) {
	return s.FindCapturesFn(ctx, filter)
}

func (s *CaptureService) DeleteCaptures(ctx context.Context, before time.Time) (int, error) {
	return s.DeleteCapturesFn(ctx, before)
}

var _ cardmark.URLSet = (*URLSet)(nil)

// URLSet is a mock implementation of cardmark.URLSet.
type URLSet struct {
	AddFn  func(url string)
	TestFn func(url string) bool
}

func (s *URLSet) Add(url string) {
	s.AddFn(url)
}

func (s *URLSet) Test(url string) bool {
	return s.TestFn(url)
}

var _ cardmark.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of cardmark.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
