package docweaver

import (
	"context"
	"time"
)

// Project is a named root of capture work. Projects are created once via
// explicit initialization and are never auto-deleted.
type Project struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
	Defaults    Settings  `yaml:"defaults,omitempty"`
}

// Validate returns an error if the project contains invalid fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "project name required")
	}
	return nil
}

// ProjectService manages the project roots on disk.
type ProjectService interface {
	// InitProject creates a new project.
	// Returns ECONFLICT if a project with the same name exists.
	InitProject(ctx context.Context, project *Project) error

	// FindProject retrieves a project by name.
	// Returns ENOTFOUND if the project was never initialized.
	FindProject(ctx context.Context, name string) (*Project, error)

	// ListProjects retrieves all projects, ordered by name.
	ListProjects(ctx context.Context) ([]*Project, error)
}

// Category is a named subdivision of a project holding one crawl's worth
// of fragments. Categories are created lazily the first time a crawl or
// configuration command targets them. Category overrides shadow only the
// keys they specify; all other keys fall through to project defaults.
type Category struct {
	Project   string   `yaml:"-"`
	Name      string   `yaml:"-"`
	Overrides Settings `yaml:"overrides,omitempty"`
}

// CategorySummary describes a category for listings.
type CategorySummary struct {
	Name        string
	Fragments   int
	HasCombined bool
	HasImproved bool
}

// CategoryService manages categories within a project.
type CategoryService interface {
	// EnsureCategory creates the category directory if needed and returns
	// the category. The owning project must exist.
	EnsureCategory(ctx context.Context, project, name string) (*Category, error)

	// FindCategory retrieves a category's stored overrides. A category
	// without stored configuration is not an error; it returns a category
	// with empty overrides.
	FindCategory(ctx context.Context, project, name string) (*Category, error)

	// SetOverrides stores the given keys into the category's override map,
	// replacing only the keys present in updates.
	SetOverrides(ctx context.Context, project, name string, updates Settings) error

	// ListCategories retrieves per-category summaries for a project,
	// ordered by name.
	ListCategories(ctx context.Context, project string) ([]*CategorySummary, error)
}
