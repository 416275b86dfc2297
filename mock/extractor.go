package mock

import "github.com/docweaver/docweaver"

var _ docweaver.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docweaver.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docweaver.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docweaver.ExtractResult, error) {
	return e.ExtractFn(html)
}
