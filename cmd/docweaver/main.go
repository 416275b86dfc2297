package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/crawl"
	"github.com/docweaver/docweaver/fs"
	"github.com/docweaver/docweaver/gemini"
	"github.com/docweaver/docweaver/goquery"
	"github.com/docweaver/docweaver/htmltomarkdown"
	dwhttp "github.com/docweaver/docweaver/http"
	"github.com/docweaver/docweaver/rod"
	dwslog "github.com/docweaver/docweaver/slog"
	"github.com/docweaver/docweaver/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Collection root directory. Set before calling Run().
	Root string

	// SQLite database backing the capture history catalog.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Root: defaultRoot(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docweaver"),
		kong.Description("Capture web documentation into local markdown collections."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docweaver --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := os.MkdirAll(m.Root, 0755); err != nil {
		return fmt.Errorf("failed to create collection root %q: %w", m.Root, err)
	}

	// Open the capture history catalog
	m.DB = sqlite.NewDB(filepath.Join(m.Root, "history.db"))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCWEAVER_ROOT to use a different collection directory\n")
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer m.Close()

	// Wire core services into dependencies
	deps.Projects = fs.NewProjectService(m.Root)
	deps.Categories = fs.NewCategoryService(m.Root)
	deps.Fragments = fs.NewFragmentStore(m.Root)
	deps.Documents = fs.NewDocumentStore(m.Root)
	deps.Activity = fs.NewActivityLog(m.Root)
	deps.Sessions = fs.NewSessionService(m.Root)
	deps.History = sqlite.NewHistoryService(m.DB)
	deps.Sitemaps = dwslog.NewLoggingSitemapService(dwhttp.NewSitemapService(nil), deps.Logger)
	deps.Links = goquery.NewLinkSelector()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Limiter = crawl.NewDomainLimiter(1.0)

	// Load never fails; a missing or corrupt state file means a fresh session.
	deps.Session, _ = deps.Sessions.Load(ctx)

	deps.NewFetcher = func(headless, useBrowser bool) (docweaver.Fetcher, error) {
		if !useBrowser {
			return dwslog.NewLoggingFetcher(dwhttp.NewFetcher(nil), deps.Logger), nil
		}
		fetcher, err := rod.NewFetcher(rod.WithHeadless(headless))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return dwslog.NewLoggingFetcher(fetcher, deps.Logger), nil
	}

	// Wire improvement services only when the command can use them.
	if cmd == "assemble" && cli.Assemble.Improve {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY not set; the combined document will be written without improvement. Get an API key at https://aistudio.google.com/apikey")
		} else {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			deps.Improver = dwslog.NewLoggingImprover(gemini.NewImprover(client, ""), deps.Logger)

			tokens, err := gemini.NewTokenCounter("")
			if err != nil {
				deps.Logger.Warn("token counter unavailable", "err", err)
			} else {
				deps.Tokens = tokens
			}
		}
	}

	return kongCtx.Run(deps)
}

// defaultRoot returns the collection root: $DOCWEAVER_ROOT when set,
// otherwise a docweaver directory under the XDG data home.
func defaultRoot() string {
	if root := os.Getenv("DOCWEAVER_ROOT"); root != "" {
		return root
	}
	return filepath.Join(xdg.DataHome, "docweaver")
}
