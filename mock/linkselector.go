package mock

import "github.com/docweaver/docweaver"

var _ docweaver.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of docweaver.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]docweaver.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]docweaver.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}
