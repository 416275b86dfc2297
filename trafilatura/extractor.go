// Package trafilatura provides heuristic main-content extraction. It is the
// default extractor when no CSS selector is configured.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/docweaver/docweaver"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docweaver.Extractor at compile time.
var _ docweaver.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main documentation content out
// of a full page, discarding navigation, headers, and footers.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docweaver.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docweaver.Errorf(docweaver.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &docweaver.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
