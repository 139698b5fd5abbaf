package mock

import (
	"context"

	"github.com/mabho/pagecarve"
)

var _ pagecarve.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of pagecarve.URLFrontier.
type URLFrontier struct {
	PushFn func(link pagecarve.DiscoveredLink) bool
	PopFn  func() (pagecarve.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link pagecarve.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (pagecarve.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ pagecarve.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagecarve.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
