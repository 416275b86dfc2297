package mock

import "github.com/docweaver/docweaver"

var _ docweaver.Converter = (*Converter)(nil)

// Converter is a mock implementation of docweaver.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
