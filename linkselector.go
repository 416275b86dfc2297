package docweaver

// LinkPriority represents crawl priority (higher = more important).
// Traversal is best-effort breadth-first: shallower pages are fetched
// first, and within a depth level higher-priority page areas win.
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink represents a URL with traversal metadata.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "nav", "toc", "content", "footer"

	// Depth is the link distance from the traversal seed. The seed itself
	// is depth 0.
	Depth int
}

// LinkSelector extracts prioritized links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns discovered links with priority.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}
