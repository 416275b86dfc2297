package main

import (
	"fmt"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/crawl"
)

// Run executes the capture command: one page, one fragment.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	project, category, err := resolveTarget(deps, c.Project, c.Category)
	if err != nil {
		return printError(deps, err)
	}
	pageURL, err := resolveURL(deps, c.URL)
	if err != nil {
		return printError(deps, err)
	}

	invocation := docweaver.Settings{}
	if c.Selector != "" {
		invocation[docweaver.SettingCSSSelector] = c.Selector
	}
	if c.Delay != nil {
		invocation[docweaver.SettingDelayBeforeReturn] = *c.Delay
	}
	if c.Timeout != nil {
		invocation[docweaver.SettingPageTimeout] = *c.Timeout
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

	orch := deps.orchestrator(fetcher, settings)
	frag, err := orch.CaptureSingle(deps.Ctx, project, category, pageURL, settings)
	if err != nil {
		return printError(deps, err)
	}

	if frag.Failed {
		fmt.Fprintf(deps.Stderr, "capture failed: %s\n", frag.Message)
		rememberSession(deps, project, category, pageURL)
		return docweaver.Errorf(docweaver.EUNAVAILABLE, "capture of %s failed", pageURL)
	}

	fmt.Fprintf(deps.Stdout, "Captured %s -> %s/%s/%s (%s)\n",
		pageURL, project, category, frag.Name, crawl.FormatBytes(len(frag.Body)))
	rememberSession(deps, project, category, pageURL)
	return nil
}
