package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docweaver/docweaver"
)

// Run executes the config command: store key=value pairs as category
// overrides. Values are stored typed so merged settings read back the same
// way defaults do.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	project, category, err := resolveTarget(deps, c.Project, c.Category)
	if err != nil {
		return printError(deps, err)
	}

	updates, err := parseSettingArgs(c.Settings)
	if err != nil {
		return printError(deps, err)
	}

	if err := deps.Categories.SetOverrides(deps.Ctx, project, category, updates); err != nil {
		return printError(deps, err)
	}

	for key, value := range updates {
		fmt.Fprintf(deps.Stdout, "%s/%s: %s = %v\n", project, category, key, value)
	}
	rememberSession(deps, project, category, "")
	return nil
}

// parseSettingArgs turns key=value arguments into typed settings. Booleans
// and integers are recognized; everything else stays a string.
func parseSettingArgs(args []string) (docweaver.Settings, error) {
	settings := docweaver.Settings{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, docweaver.Errorf(docweaver.EINVALID, "expected key=value, got %q", arg)
		}
		settings[key] = parseSettingValue(value)
	}
	return settings, nil
}

func parseSettingValue(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}
