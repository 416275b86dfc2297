package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/crawl"
	"github.com/docweaver/docweaver/goquery"
	"github.com/docweaver/docweaver/trafilatura"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Projects   docweaver.ProjectService
	Categories docweaver.CategoryService
	Fragments  docweaver.FragmentStore
	Documents  docweaver.DocumentStore
	Activity   docweaver.ActivityLog
	History    docweaver.CaptureHistory
	Sitemaps   docweaver.SitemapService
	Sessions   docweaver.SessionService

	Converter docweaver.Converter
	Links     docweaver.LinkSelector
	Limiter   docweaver.DomainLimiter

	// NewFetcher builds the page fetcher for a capture command. useBrowser
	// selects the rendering engine; headless applies to the browser engine
	// only.
	NewFetcher func(headless, useBrowser bool) (docweaver.Fetcher, error)

	// Improvement services, wired only when assembling with --improve and
	// an API key is available.
	Improver docweaver.Improver
	Tokens   docweaver.TokenCounter

	// Session is the remembered last-used project, category, and URL,
	// loaded before command dispatch.
	Session *docweaver.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Init       InitCmd       `cmd:"" help:"Initialize a new project"`
	Capture    CaptureCmd    `cmd:"" help:"Capture a single page into a category"`
	Crawl      CrawlCmd      `cmd:"" help:"Deep-capture a documentation site into a category"`
	Projects   ProjectsCmd   `cmd:"" help:"List projects"`
	Categories CategoriesCmd `cmd:"" help:"List a project's categories"`
	Config     ConfigCmd     `cmd:"" help:"Set category configuration overrides"`
	Assemble   AssembleCmd   `cmd:"" help:"Combine a category's fragments into one document"`
	History    HistoryCmd    `cmd:"" help:"Show capture history"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Name        string `arg:"" help:"Project name"`
	Description string `short:"d" help:"Project description"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URL       string `arg:"" optional:"" help:"Page URL (defaults to the remembered URL)"`
	Project   string `short:"p" help:"Project name (defaults to the remembered project)"`
	Category  string `short:"c" help:"Category name (defaults to the remembered category)"`
	Selector  string `short:"s" help:"CSS selector scoping extraction to a page region"`
	Delay     *int   `help:"Seconds to wait after load before reading HTML"`
	Timeout   *int   `help:"Whole-page timeout in milliseconds"`
	NoBrowser bool   `help:"Fetch over plain HTTP without a browser"`
	Headful   bool   `help:"Run the browser with a visible window"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL       string `arg:"" optional:"" help:"Seed URL (defaults to the remembered URL)"`
	Project   string `short:"p" help:"Project name (defaults to the remembered project)"`
	Category  string `short:"c" help:"Category name (defaults to the remembered category)"`
	MaxPages  *int   `help:"Page cap for this crawl"`
	MaxDepth  *int   `help:"Link depth cap for this crawl"`
	Selector  string `short:"s" help:"CSS selector scoping extraction to a page region"`
	Sitemap   bool   `help:"Seed page order from the site's sitemap instead of link traversal"`
	NoBrowser bool   `help:"Fetch over plain HTTP without a browser"`
	Headful   bool   `help:"Run the browser with a visible window"`
}

// ProjectsCmd is the "projects" subcommand.
type ProjectsCmd struct{}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct {
	Project string `arg:"" optional:"" help:"Project name (defaults to the remembered project)"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Settings []string `arg:"" help:"key=value pairs to store as category overrides"`
	Project  string   `short:"p" help:"Project name (defaults to the remembered project)"`
	Category string   `short:"c" help:"Category name (defaults to the remembered category)"`
}

// AssembleCmd is the "assemble" subcommand.
type AssembleCmd struct {
	Project  string `short:"p" help:"Project name (defaults to the remembered project)"`
	Category string `short:"c" help:"Category name (defaults to the remembered category)"`
	Improve  bool   `short:"i" help:"Also produce an improved version via the text-improvement service"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Project  string `short:"p" help:"Filter by project"`
	Category string `short:"c" help:"Filter by category"`
	Limit    int    `short:"n" default:"20" help:"Maximum records to show"`
}

// resolveTarget fills project and category from the remembered session when
// flags leave them empty.
func resolveTarget(deps *Dependencies, project, category string) (string, string, error) {
	if project == "" && deps.Session != nil {
		project = deps.Session.Project
	}
	if category == "" && deps.Session != nil {
		category = deps.Session.Category
	}
	if project == "" {
		return "", "", docweaver.Errorf(docweaver.EINVALID, "no project specified and none remembered; use --project")
	}
	if category == "" {
		return "", "", docweaver.Errorf(docweaver.EINVALID, "no category specified and none remembered; use --category")
	}
	return project, category, nil
}

// resolveURL fills the target URL from the remembered session.
func resolveURL(deps *Dependencies, rawURL string) (string, error) {
	if rawURL == "" && deps.Session != nil {
		rawURL = deps.Session.URL
	}
	if rawURL == "" {
		return "", docweaver.Errorf(docweaver.EINVALID, "no URL specified and none remembered")
	}
	return rawURL, nil
}

// effectiveSettings resolves the three configuration layers for one
// invocation: project defaults, category overrides, then flag overrides.
func effectiveSettings(deps *Dependencies, project, category string, invocation docweaver.Settings) (docweaver.Settings, error) {
	proj, err := deps.Projects.FindProject(deps.Ctx, project)
	if err != nil {
		return nil, err
	}
	cat, err := deps.Categories.EnsureCategory(deps.Ctx, project, category)
	if err != nil {
		return nil, err
	}
	return docweaver.ResolveSettings(proj.Defaults, cat.Overrides, invocation), nil
}

// orchestrator wires a capture orchestrator for the effective settings. The
// extractor depends on configuration: a CSS selector scopes extraction to a
// page region, otherwise heuristic main-content extraction is used.
func (d *Dependencies) orchestrator(fetcher docweaver.Fetcher, settings docweaver.Settings) *crawl.Orchestrator {
	var extractor docweaver.Extractor
	if sel := settings.String(docweaver.SettingCSSSelector, ""); sel != "" {
		extractor = goquery.NewScopedExtractor(sel)
	} else {
		extractor = trafilatura.NewExtractor()
	}

	return &crawl.Orchestrator{
		Fetcher:   fetcher,
		Extractor: extractor,
		Converter: d.Converter,
		Links:     d.Links,
		Limiter:   d.Limiter,
		Fragments: d.Fragments,
		Activity:  d.Activity,
		History:   d.History,
		Sitemaps:  d.Sitemaps,
		Logger:    d.Logger,
	}
}

// rememberSession persists the last-used values. Failure to remember never
// fails the command that succeeded.
func rememberSession(deps *Dependencies, project, category, url string) {
	if deps.Sessions == nil {
		return
	}
	session := &docweaver.Session{Project: project, Category: category, URL: url}
	if url == "" && deps.Session != nil {
		session.URL = deps.Session.URL
	}
	if err := deps.Sessions.Save(deps.Ctx, session); err != nil {
		deps.Logger.Warn("failed to remember session", "err", err)
	}
	deps.Session = session
}

func printError(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", docweaver.ErrorMessage(err))
	return err
}
