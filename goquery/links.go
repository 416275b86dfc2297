// Package goquery provides CSS-selector based HTML processing: traversal
// link discovery and scoped content extraction.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docweaver/docweaver"
)

// Ensure LinkSelector implements docweaver.LinkSelector at compile time.
var _ docweaver.LinkSelector = (*LinkSelector)(nil)

// LinkSelector discovers traversal candidates using universal CSS selectors
// that work across documentation frameworks. Common class names and
// landmark elements identify the page area a link came from, which decides
// its traversal priority.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// Links to other hosts are filtered out.
//
// Priority order (highest to lowest):
//   - TOC: .toc, .table-of-contents, .sidebar, aside
//   - Navigation: nav, [role="navigation"], .nav, .menu, .navbar
//   - Content: main, article, .content, .doc-content
//   - Footer: footer, .footer
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]docweaver.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docweaver.Errorf(docweaver.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docweaver.Errorf(docweaver.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates.
	seen := make(map[string]int)
	var links []docweaver.DiscoveredLink

	extract := func(selector string, priority docweaver.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			// Exact host match; subdomains are filtered too.
			if !isSameHost(base, resolved) {
				return
			}

			link := docweaver.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			}

			if idx, ok := seen[resolved]; ok {
				if priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	extract(".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]",
		docweaver.PriorityTOC, "toc")
	extract("nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]",
		docweaver.PriorityNavigation, "nav")
	extract("main a[href], article a[href], .content a[href], .doc-content a[href]",
		docweaver.PriorityContent, "content")
	extract("footer a[href], .footer a[href]",
		docweaver.PriorityFooter, "footer")

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink reports whether href uses a scheme that can never be
// fetched as a page.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "ftp:", "data:", "file:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
