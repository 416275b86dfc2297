package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docweaver/docweaver"
)

// Ensure ScopedExtractor implements docweaver.Extractor at compile time.
var _ docweaver.Extractor = (*ScopedExtractor)(nil)

// ScopedExtractor extracts page content matching a user-supplied CSS
// selector. It replaces heuristic main-content detection when the user
// knows exactly which element holds the documentation.
type ScopedExtractor struct {
	selector string
}

// NewScopedExtractor creates a ScopedExtractor for the given CSS selector.
func NewScopedExtractor(selector string) *ScopedExtractor {
	return &ScopedExtractor{selector: selector}
}

// Extract returns the outer HTML of all elements matching the selector,
// concatenated in document order. Returns ENOTFOUND if nothing matches, so
// the caller can tell a bad selector from an empty page.
func (e *ScopedExtractor) Extract(html string) (*docweaver.ExtractResult, error) {
	if e.selector == "" {
		return nil, docweaver.Errorf(docweaver.EINVALID, "css selector required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docweaver.Errorf(docweaver.EINVALID, "failed to parse HTML: %v", err)
	}

	matches := doc.Find(e.selector)
	if matches.Length() == 0 {
		return nil, docweaver.Errorf(docweaver.ENOTFOUND, "no elements match selector %q", e.selector)
	}

	var b strings.Builder
	var outerErr error
	matches.Each(func(_ int, sel *goquery.Selection) {
		outer, err := goquery.OuterHtml(sel)
		if err != nil {
			outerErr = err
			return
		}
		b.WriteString(outer)
		b.WriteString("\n")
	})
	if outerErr != nil {
		return nil, outerErr
	}

	return &docweaver.ExtractResult{
		Title:       pageTitle(doc),
		ContentHTML: b.String(),
	}, nil
}

// pageTitle prefers the document title, falling back to the first h1.
func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
