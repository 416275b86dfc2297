package docweaver

import "context"

// Fetcher retrieves rendered HTML from URLs. It is the narrow seam to the
// external crawling engine: implementations may use browser automation to
// handle JavaScript-rendered content, or plain HTTP for static sites.
type Fetcher interface {
	// Fetch navigates to the URL, applies the per-page options, and returns
	// the rendered HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, opts FetchOptions) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
