package mock

import "github.com/mabho/pagecarve"

var _ pagecarve.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagecarve.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
