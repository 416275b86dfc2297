// Package http provides HTTP-based implementations of docweaver.Fetcher and
// docweaver.SitemapService for static sites that don't require JavaScript
// rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docweaver/docweaver"
)

// DefaultFetchTimeout bounds a request when the caller supplies no
// per-page deadline.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements docweaver.Fetcher at compile time.
var _ docweaver.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike the browser fetcher it does not execute JavaScript, so the
// browser-only knobs in FetchOptions (viewport, user simulation, navigator
// masking) are ignored.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a new HTTP-based Fetcher.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts docweaver.FetchOptions) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
