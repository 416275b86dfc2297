package main

import (
	"fmt"

	"github.com/docweaver/docweaver"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	project := c.Project
	if project == "" && deps.Session != nil {
		project = deps.Session.Project
	}
	if project == "" {
		return printError(deps, docweaver.Errorf(docweaver.EINVALID, "no project specified and none remembered"))
	}

	summaries, err := deps.Categories.ListCategories(deps.Ctx, project)
	if err != nil {
		return printError(deps, err)
	}

	if len(summaries) == 0 {
		fmt.Fprintf(deps.Stdout, "No categories in %q yet.\n", project)
		return nil
	}

	for _, summary := range summaries {
		label := "pages"
		if summary.Fragments == 1 {
			label = "page"
		}
		fmt.Fprintf(deps.Stdout, "%-20s  %d %s", summary.Name, summary.Fragments, label)
		if summary.HasCombined {
			fmt.Fprint(deps.Stdout, "  [combined]")
		}
		if summary.HasImproved {
			fmt.Fprint(deps.Stdout, "  [improved]")
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
