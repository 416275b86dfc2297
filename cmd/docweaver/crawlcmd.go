package main

import (
	"fmt"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/crawl"
)

// Run executes the crawl command: a bounded traversal from a seed URL.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	project, category, err := resolveTarget(deps, c.Project, c.Category)
	if err != nil {
		return printError(deps, err)
	}
	seedURL, err := resolveURL(deps, c.URL)
	if err != nil {
		return printError(deps, err)
	}

	invocation := docweaver.Settings{}
	if c.MaxPages != nil {
		invocation[docweaver.SettingMaxPages] = *c.MaxPages
	}
	if c.MaxDepth != nil {
		invocation[docweaver.SettingMaxDepth] = *c.MaxDepth
	}
	if c.Selector != "" {
		invocation[docweaver.SettingCSSSelector] = c.Selector
	}
	if c.Headful {
		invocation[docweaver.SettingHeadless] = false
	}

	settings, err := effectiveSettings(deps, project, category, invocation)
	if err != nil {
		return printError(deps, err)
	}

	fetcher, err := deps.NewFetcher(settings.Bool(docweaver.SettingHeadless, true), !c.NoBrowser)
	if err != nil {
		return printError(deps, err)
	}
	defer fetcher.Close()

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s\n", event.URL)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %3d  %s\n", event.Ordinal, crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 70), event.Error)
		}
	}

	orch := deps.orchestrator(fetcher, settings)

	var result *crawl.Result
	if c.Sitemap {
		result, err = orch.CaptureFromSitemap(deps.Ctx, project, category, seedURL, settings, progress)
	} else {
		result, err = orch.CaptureDeep(deps.Ctx, project, category, seedURL, settings, progress)
	}
	if err != nil {
		return printError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s), %d failed; %s\n",
		result.Saved, crawl.FormatBytes(result.Bytes), result.Failed, result.HaltedBy)
	rememberSession(deps, project, category, seedURL)
	return nil
}
