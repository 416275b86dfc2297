// Package rod provides a browser-based implementation of docweaver.Fetcher.
// Pages are rendered in Chrome so JavaScript-heavy documentation sites
// produce the same HTML a reader would see.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// overrideNavigatorJS masks the headless webdriver marker some sites use to
// serve degraded pages to automation.
const overrideNavigatorJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Ensure Fetcher implements docweaver.Fetcher at compile time.
var _ docweaver.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	headless bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHeadless controls whether the browser runs headless. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(f *Fetcher) {
		f.headless = headless
	}
}

// NewFetcher creates a new Fetcher that launches a Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{headless: true}
	for _, opt := range opts {
		opt(f)
	}

	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(f.headless)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. The per-page
// knobs in opts control viewport, navigator masking, settle delay, and the
// whole-page deadline.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts docweaver.FetchOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if opts.ViewportWidth > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             opts.ViewportWidth,
			Height:            opts.ViewportWidth * 3 / 4,
			DeviceScaleFactor: 1,
		}); err != nil {
			return "", err
		}
	}

	// Must be registered before navigation so the mask is in place when the
	// page's own scripts run.
	if opts.OverrideNavigator {
		if _, err := page.EvalOnNewDocument(overrideNavigatorJS); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if opts.WaitForImages {
		if err := page.WaitIdle(opts.Timeout); err != nil {
			return "", err
		}
	}

	if opts.SimulateUser {
		// A few scroll steps trigger lazy-loaded content.
		if err := page.Mouse.Scroll(0, 1200, 4); err != nil {
			return "", err
		}
	}

	if opts.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(opts.Delay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
