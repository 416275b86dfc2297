package main

import (
	"fmt"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/assemble"
)

// Run executes the assemble command.
func (c *AssembleCmd) Run(deps *Dependencies) error {
	project, category, err := resolveTarget(deps, c.Project, c.Category)
	if err != nil {
		return printError(deps, err)
	}

	assembler := &assemble.Assembler{
		Fragments: deps.Fragments,
		Documents: deps.Documents,
		Improver:  deps.Improver,
		Tokens:    deps.Tokens,
		Activity:  deps.Activity,
		History:   deps.History,
		Logger:    deps.Logger,
	}

	result, err := assembler.Combine(deps.Ctx, project, category, c.Improve)
	if err != nil {
		return printError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Assembled %d sections into %s/%s/_combined.md\n",
		result.Sections, project, category)
	for _, name := range result.Skipped {
		fmt.Fprintf(deps.Stderr, "  skipped empty fragment %s\n", name)
	}
	if result.TokenCount > 0 {
		fmt.Fprintf(deps.Stdout, "  estimated %d tokens\n", result.TokenCount)
	}
	if c.Improve {
		if result.Improved {
			fmt.Fprintf(deps.Stdout, "  improved version written to %s/%s/_improved.md\n", project, category)
		} else {
			fmt.Fprintf(deps.Stderr, "  improvement failed: %s (combined document kept)\n",
				docweaver.ErrorMessage(result.ImproveErr))
		}
	}

	rememberSession(deps, project, category, "")
	return nil
}
