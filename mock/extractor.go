package mock

import "github.com/fwojciec/cetd"

var _ cetd.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cetd.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*cetd.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*cetd.ExtractResult, error) {
	return e.ExtractFn(html)
}
