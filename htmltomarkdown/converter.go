package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/cetd"
)

// Ensure Converter implements cetd.Converter at compile time.
var _ cetd.Converter = (*Converter)(nil)

// Converter renders extracted HTML as Markdown.
type Converter struct {
	conv    *converter.Converter
	baseURL string
}

// Option configures a Converter.
type Option func(*Converter)

// WithBaseURL resolves relative link and image targets against u.
func WithBaseURL(u string) Option {
	return func(c *Converter) {
		c.baseURL = u
	}
}

// NewConverter creates a new Converter with CommonMark and table support.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cetd.Errorf(cetd.EINVALID, "empty HTML input")
	}

	var md string
	var err error
	if c.baseURL != "" {
		md, err = c.conv.ConvertString(html, converter.WithDomain(c.baseURL))
	} else {
		md, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", cetd.Errorf(cetd.EINTERNAL, "markdown conversion: %v", err)
	}
	return strings.TrimSpace(md), nil
}
