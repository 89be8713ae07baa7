package trafilatura

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cetd"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements cetd.Extractor at compile time.
var _ cetd.Extractor = (*Extractor)(nil)

// Extractor extracts main content with go-trafilatura. It serves as a
// baseline to compare density extraction against.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with fallback extractors enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*cetd.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cetd.Errorf(cetd.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, cetd.Errorf(cetd.EINVALID, "trafilatura: %v", err)
	}

	var content, text string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, cetd.Errorf(cetd.EINTERNAL, "failed to render content: %v", err)
		}
		content = buf.String()
		text = goquery.NewDocumentFromNode(result.ContentNode).Text()
	}

	return &cetd.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: content,
		Text:        strings.Join(strings.Fields(text), " "),
	}, nil
}
