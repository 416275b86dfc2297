package main

import (
	"fmt"

	"github.com/docweaver/docweaver"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	project := &docweaver.Project{
		Name:        c.Name,
		Description: c.Description,
	}

	if err := deps.Projects.InitProject(deps.Ctx, project); err != nil {
		return printError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Initialized project %q\n", c.Name)
	rememberSession(deps, c.Name, sessionCategory(deps), "")
	return nil
}

// sessionCategory returns the remembered category, if any.
func sessionCategory(deps *Dependencies) string {
	if deps.Session != nil {
		return deps.Session.Category
	}
	return ""
}
