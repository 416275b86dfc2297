// Package crawl provides capture orchestration: single-page fetches and
// bounded breadth-first traversals that persist markdown fragments as they
// arrive, plus the per-category activity log entries describing each run.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/google/uuid"
)

// Frontier configuration for deep traversal.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Halt reasons recorded for deep traversals.
const (
	HaltPageCap   = "page cap reached"
	HaltExhausted = "frontier exhausted"
)

// Orchestrator coordinates page capture. It decides what to request and how
// many requests to make; fetching, extraction, and conversion are delegated
// to the injected collaborators.
type Orchestrator struct {
	Fetcher   docweaver.Fetcher
	Extractor docweaver.Extractor
	Converter docweaver.Converter
	Links     docweaver.LinkSelector
	Limiter   docweaver.DomainLimiter
	Fragments docweaver.FragmentStore
	Activity  docweaver.ActivityLog
	History   docweaver.CaptureHistory // optional
	Sitemaps  docweaver.SitemapService // optional, enables sitemap seeding

	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of a deep capture.
type Result struct {
	Saved    int
	Failed   int
	Bytes    int
	HaltedBy string
}

// ProgressEvent reports progress during a capture operation.
type ProgressEvent struct {
	Type    ProgressType
	Ordinal int
	URL     string
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting capture progress.
type ProgressFunc func(event ProgressEvent)

// CaptureSingle issues exactly one fetch for rawURL and persists the result
// as a URL-slug-named fragment. A failed capture is not an error: the
// returned fragment records the failure, an activity-log block is appended,
// and the caller decides how to report it.
func (o *Orchestrator) CaptureSingle(ctx context.Context, project, category, rawURL string, settings docweaver.Settings) (*docweaver.Fragment, error) {
	rec := o.newRecord(project, category, rawURL, docweaver.ModeSingle, singleParams(settings))

	frag := &docweaver.Fragment{
		Name:      docweaver.SlugFromURL(rawURL) + ".md",
		SourceURL: rawURL,
	}

	markdown, title, err := o.capturePage(ctx, rawURL, settings)
	if err != nil {
		frag.Failed = true
		frag.Message = err.Error()
		rec.Outcome = "failed"
		rec.Error = err.Error()
		o.finishRecord(ctx, project, category, rec)
		return frag, nil
	}

	frag.Title = title
	frag.Body = markdown
	frag.Hash = ComputeHash(markdown)
	frag.CapturedAt = time.Now().UTC()

	if err := o.Fragments.SaveFragment(ctx, project, category, frag); err != nil {
		frag.Failed = true
		frag.Message = err.Error()
		rec.Outcome = "failed"
		rec.Error = err.Error()
		o.finishRecord(ctx, project, category, rec)
		return frag, nil
	}

	rec.Outcome = "ok"
	rec.Pages = 1
	rec.Bytes = len(markdown)
	o.finishRecord(ctx, project, category, rec)

	return frag, nil
}

// CaptureDeep performs a bounded breadth-first traversal from seedURL,
// restricted to the seed's domain. Traversal halts at the first of the
// max_pages or max_depth caps. Each successfully captured page is assigned
// the next ordinal (1, 2, 3, ...) and persisted immediately, so a partial
// traversal still yields usable fragments. Per-page failures are reported
// through progress and counted; they never halt the traversal and never
// consume an ordinal.
func (o *Orchestrator) CaptureDeep(ctx context.Context, project, category, seedURL string, settings docweaver.Settings, progress ProgressFunc) (*Result, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" {
		return nil, docweaver.Errorf(docweaver.EINVALID, "invalid seed URL %q", seedURL)
	}

	maxPages := settings.Int(docweaver.SettingMaxPages, 50)
	maxDepth := settings.Int(docweaver.SettingMaxDepth, 2)

	rec := o.newRecord(project, category, seedURL, docweaver.ModeDeep,
		fmt.Sprintf("max_pages=%d max_depth=%d", maxPages, maxDepth))

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(docweaver.DiscoveredLink{
		URL:      seedURL,
		Priority: docweaver.PriorityNavigation,
		Depth:    0,
	})

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: seedURL})
	}

	result := &Result{HaltedBy: HaltExhausted}
	ordinal := 0

	for {
		if result.Saved >= maxPages {
			result.HaltedBy = HaltPageCap
			break
		}

		link, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			o.failRecord(ctx, project, category, rec, result, err)
			return result, err
		}

		html, err := o.fetchPage(ctx, link.URL, settings)
		if err != nil {
			result.Failed++
			o.logger().Warn("page capture failed", "url", link.URL, "err", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: err})
			}
			continue
		}

		// Expand the frontier before the page cap can halt the loop, so a
		// later invocation with a higher cap sees the same ordering.
		if link.Depth < maxDepth {
			o.pushLinks(frontier, html, link, seed)
		}

		markdown, title, err := o.renderPage(html, link.URL)
		if err != nil {
			result.Failed++
			o.logger().Warn("page render failed", "url", link.URL, "err", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: err})
			}
			continue
		}

		// Arrival order of successful captures. Never reassigned or reused,
		// even if persisting the fragment fails afterwards.
		ordinal++

		frag := &docweaver.Fragment{
			Name:       fmt.Sprintf("%03d-%s.md", ordinal, docweaver.SlugFromURL(link.URL)),
			SourceURL:  link.URL,
			Title:      title,
			Body:       markdown,
			Position:   ordinal,
			Hash:       ComputeHash(markdown),
			CapturedAt: time.Now().UTC(),
		}

		if err := o.Fragments.SaveFragment(ctx, project, category, frag); err != nil {
			result.Failed++
			o.logger().Warn("fragment write failed", "name", frag.Name, "err", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: err})
			}
			continue
		}

		result.Saved++
		result.Bytes += len(markdown)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Ordinal: ordinal, URL: link.URL})
		}
	}

	rec.Outcome = "ok (" + result.HaltedBy + ")"
	rec.Pages = result.Saved
	rec.Bytes = result.Bytes
	if result.Failed > 0 {
		rec.Error = fmt.Sprintf("%d pages failed", result.Failed)
	}
	o.finishRecord(ctx, project, category, rec)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return result, nil
}

// CaptureFromSitemap seeds the ordinal sequence from the site's sitemap
// instead of link traversal. URLs outside the seed's domain are skipped and
// the max_pages cap still applies.
func (o *Orchestrator) CaptureFromSitemap(ctx context.Context, project, category, seedURL string, settings docweaver.Settings, progress ProgressFunc) (*Result, error) {
	if o.Sitemaps == nil {
		return nil, docweaver.Errorf(docweaver.EINTERNAL, "sitemap service not configured")
	}

	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" {
		return nil, docweaver.Errorf(docweaver.EINVALID, "invalid seed URL %q", seedURL)
	}

	maxPages := settings.Int(docweaver.SettingMaxPages, 50)
	rec := o.newRecord(project, category, seedURL, docweaver.ModeSitemap,
		fmt.Sprintf("max_pages=%d", maxPages))

	urls, err := o.Sitemaps.DiscoverURLs(ctx, seedURL)
	if err != nil {
		o.failRecord(ctx, project, category, rec, &Result{}, err)
		return nil, docweaver.Errorf(docweaver.EUNAVAILABLE, "sitemap discovery: %v", err)
	}
	if len(urls) == 0 {
		rec.Outcome = "ok (no sitemap URLs)"
		o.finishRecord(ctx, project, category, rec)
		return &Result{HaltedBy: HaltExhausted}, nil
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: seedURL})
	}

	result := &Result{HaltedBy: HaltExhausted}
	ordinal := 0

	for _, pageURL := range urls {
		if result.Saved >= maxPages {
			result.HaltedBy = HaltPageCap
			break
		}

		parsed, err := url.Parse(pageURL)
		if err != nil || parsed.Host != seed.Host {
			continue
		}

		if err := ctx.Err(); err != nil {
			o.failRecord(ctx, project, category, rec, result, err)
			return result, err
		}

		markdown, title, err := o.capturePage(ctx, pageURL, settings)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			}
			continue
		}

		ordinal++
		frag := &docweaver.Fragment{
			Name:       fmt.Sprintf("%03d-%s.md", ordinal, docweaver.SlugFromURL(pageURL)),
			SourceURL:  pageURL,
			Title:      title,
			Body:       markdown,
			Position:   ordinal,
			Hash:       ComputeHash(markdown),
			CapturedAt: time.Now().UTC(),
		}

		if err := o.Fragments.SaveFragment(ctx, project, category, frag); err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			}
			continue
		}

		result.Saved++
		result.Bytes += len(markdown)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Ordinal: ordinal, URL: pageURL})
		}
	}

	rec.Outcome = "ok (" + result.HaltedBy + ")"
	rec.Pages = result.Saved
	rec.Bytes = result.Bytes
	if result.Failed > 0 {
		rec.Error = fmt.Sprintf("%d pages failed", result.Failed)
	}
	o.finishRecord(ctx, project, category, rec)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return result, nil
}

// capturePage fetches a single URL and renders it to markdown.
func (o *Orchestrator) capturePage(ctx context.Context, pageURL string, settings docweaver.Settings) (markdown, title string, err error) {
	html, err := o.fetchPage(ctx, pageURL, settings)
	if err != nil {
		return "", "", err
	}
	return o.renderPage(html, pageURL)
}

// fetchPage rate-limits, then fetches with retry.
func (o *Orchestrator) fetchPage(ctx context.Context, pageURL string, settings docweaver.Settings) (string, error) {
	if o.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return "", err
		}
		if err := o.Limiter.Wait(ctx, parsed.Host); err != nil {
			return "", err
		}
	}

	opts := docweaver.FetchOptionsFromSettings(settings)
	delays := o.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return fetchWithRetry(ctx, pageURL, func(ctx context.Context, u string) (string, error) {
		return o.Fetcher.Fetch(ctx, u, opts)
	}, delays)
}

// renderPage extracts the main content from HTML and converts it to
// markdown. The raw markdown becomes the fragment body verbatim.
func (o *Orchestrator) renderPage(html, pageURL string) (markdown, title string, err error) {
	extracted, err := o.Extractor.Extract(html)
	if err != nil {
		return "", "", err
	}

	markdown, err = o.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", "", err
	}

	return markdown, extracted.Title, nil
}

// pushLinks extracts links from html and queues the in-domain ones at the
// next depth. Cross-domain links are never followed, regardless of target.
func (o *Orchestrator) pushLinks(frontier *Frontier, html string, from docweaver.DiscoveredLink, seed *url.URL) {
	if o.Links == nil {
		return
	}

	links, err := o.Links.ExtractLinks(html, from.URL)
	if err != nil {
		o.logger().Debug("link extraction failed", "url", from.URL, "err", err)
		return
	}

	for _, link := range links {
		parsed, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if parsed.Host != seed.Host {
			continue
		}
		link.Depth = from.Depth + 1
		frontier.Push(link)
	}
}

func (o *Orchestrator) newRecord(project, category, targetURL, mode, params string) *docweaver.CaptureRecord {
	return &docweaver.CaptureRecord{
		ID:        uuid.New().String(),
		Project:   project,
		Category:  category,
		URL:       targetURL,
		Mode:      mode,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}
}

func (o *Orchestrator) failRecord(ctx context.Context, project, category string, rec *docweaver.CaptureRecord, result *Result, err error) {
	rec.Outcome = "failed"
	rec.Error = err.Error()
	rec.Pages = result.Saved
	rec.Bytes = result.Bytes
	o.finishRecord(ctx, project, category, rec)
}

// finishRecord appends the activity-log block and mirrors it into the
// history catalog. Neither failure disturbs the capture outcome.
func (o *Orchestrator) finishRecord(ctx context.Context, project, category string, rec *docweaver.CaptureRecord) {
	if o.Activity != nil {
		if err := o.Activity.Append(ctx, project, category, rec); err != nil {
			o.logger().Warn("activity log append failed", "err", err)
		}
	}
	if o.History != nil {
		if err := o.History.RecordCapture(ctx, rec); err != nil {
			o.logger().Warn("capture history write failed", "err", err)
		}
	}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func singleParams(settings docweaver.Settings) string {
	params := fmt.Sprintf("delay=%ds timeout=%dms",
		settings.Int(docweaver.SettingDelayBeforeReturn, 2),
		settings.Int(docweaver.SettingPageTimeout, 60000))
	if sel := settings.String(docweaver.SettingCSSSelector, ""); sel != "" {
		params += " css_selector=" + sel
	}
	return params
}
