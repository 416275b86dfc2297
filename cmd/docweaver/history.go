package main

import (
	"fmt"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/crawl"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := docweaver.CaptureFilter{Limit: c.Limit}
	if c.Project != "" {
		filter.Project = &c.Project
	}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	recs, err := deps.History.ListCaptures(deps.Ctx, filter)
	if err != nil {
		return printError(deps, err)
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No captures recorded.")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s/%s", rec.CreatedAt.Format(time.RFC3339), rec.Mode, rec.Project, rec.Category)
		if rec.URL != "" {
			fmt.Fprintf(deps.Stdout, "  %s", crawl.TruncateURL(rec.URL, 50))
		}
		fmt.Fprintf(deps.Stdout, "  %s pages=%d %s\n", rec.Outcome, rec.Pages, crawl.FormatBytes(rec.Bytes))
	}
	return nil
}
