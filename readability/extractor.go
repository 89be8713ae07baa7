package readability

import (
	"strings"

	"github.com/fwojciec/cetd"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements cetd.Extractor at compile time.
var _ cetd.Extractor = (*Extractor)(nil)

// Extractor extracts main content with go-readability. It serves as a
// baseline to compare density extraction against.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*cetd.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cetd.Errorf(cetd.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, cetd.Errorf(cetd.EINVALID, "readability: %v", err)
	}

	return &cetd.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
		Text:        strings.Join(strings.Fields(article.TextContent), " "),
	}, nil
}
