// Package slog provides logging decorators for the service interfaces.
// Each decorator delegates to the wrapped implementation and records the
// call with structured attributes.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docweaver/docweaver"
)

// Ensure LoggingFetcher implements docweaver.Fetcher.
var _ docweaver.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-page logging.
type LoggingFetcher struct {
	next   docweaver.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docweaver.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, opts docweaver.FetchOptions) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("page fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, opts)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
