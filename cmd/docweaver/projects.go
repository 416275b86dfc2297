package main

import (
	"fmt"
)

// Run executes the projects command.
func (c *ProjectsCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.ListProjects(deps.Ctx)
	if err != nil {
		return printError(deps, err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(deps.Stdout, "No projects. Create one with 'docweaver init <name>'.")
		return nil
	}

	for _, project := range projects {
		fmt.Fprintf(deps.Stdout, "%-20s  created %s", project.Name, project.CreatedAt.Format("2006-01-02"))
		if project.Description != "" {
			fmt.Fprintf(deps.Stdout, "  %s", project.Description)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
