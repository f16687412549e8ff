package mock

import "github.com/fwojciec/cardmark"

var _ cardmark.Converter = (*Converter)(nil)

// Converter is a mock implementation of cardmark.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
