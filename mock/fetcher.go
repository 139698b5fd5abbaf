package mock

import (
	"context"

	"github.com/mabho/pagecarve"
)

var _ pagecarve.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagecarve.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ pagecarve.TitleResolver = (*TitleResolver)(nil)

// TitleResolver is a mock implementation of pagecarve.TitleResolver.
type TitleResolver struct {
	ResolveTitleFn func(ctx context.Context, url string) (string, error)
}

func (r *TitleResolver) ResolveTitle(ctx context.Context, url string) (string, error) {
	return r.ResolveTitleFn(ctx, url)
}
