// Package mock provides function-field mock implementations of the
// docweaver interfaces for tests.
package mock

import (
	"context"

	"github.com/docweaver/docweaver"
)

var _ docweaver.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docweaver.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, opts docweaver.FetchOptions) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, opts docweaver.FetchOptions) (string, error) {
	return f.FetchFn(ctx, url, opts)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
