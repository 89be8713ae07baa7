// Package goquery extracts the main content of HTML pages by text density,
// using goquery to parse and render documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cetd"
	"github.com/fwojciec/cetd/density"
	"golang.org/x/net/html"
)

// Ensure Extractor implements cetd.Extractor at compile time.
var _ cetd.Extractor = (*Extractor)(nil)

// Extractor extracts main content from HTML by text density.
type Extractor struct {
	opts []density.Option
}

// NewExtractor creates a new Extractor. The options are passed through to
// density extraction.
func NewExtractor(opts ...density.Option) *Extractor {
	return &Extractor{opts: opts}
}

// Extract parses rawHTML, reduces its body to the main content and returns
// the content together with the page title.
func (e *Extractor) Extract(rawHTML string) (*cetd.ExtractResult, error) {
	doc, body, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	if _, err := density.Extract(body.Get(0), e.opts...); err != nil {
		return nil, err
	}

	content, err := body.Html()
	if err != nil {
		return nil, cetd.Errorf(cetd.EINTERNAL, "failed to render content: %v", err)
	}

	return &cetd.ExtractResult{
		Title:       title(doc),
		ContentHTML: strings.TrimSpace(content),
		Text:        collapseSpace(body.Text()),
	}, nil
}

// Explanation is the scored but unpruned body of a page.
type Explanation struct {
	Title     string
	Threshold float64
	Tree      *density.Tree

	body *goquery.Selection
}

// Row is one element of an Explanation in document order.
type Row struct {
	Depth   int
	Tag     string
	Metrics density.Metrics
}

// Explain sanitizes and scores the body of rawHTML and decides which
// elements are content, without removing anything.
func (e *Extractor) Explain(rawHTML string) (*Explanation, error) {
	doc, body, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	root := body.Get(0)
	density.Sanitize(root, e.opts...)
	tree, err := density.Analyze(root, e.opts...)
	if err != nil {
		return nil, err
	}

	return &Explanation{
		Title:     title(doc),
		Threshold: tree.Mark(),
		Tree:      tree,
		body:      body,
	}, nil
}

// Rows returns the metrics of every element with its depth below the body.
func (x *Explanation) Rows() []Row {
	elements := x.Tree.Elements()
	depth := make(map[*html.Node]int, len(elements))
	rows := make([]Row, 0, len(elements))
	for i, n := range elements {
		if i > 0 {
			depth[n] = depth[n.Parent] + 1
		}
		m, _ := x.Tree.Metrics(n)
		rows = append(rows, Row{Depth: depth[n], Tag: n.Data, Metrics: m})
	}
	return rows
}

// AnnotatedHTML renders the body with every element's metrics attached as
// data attributes.
func (x *Explanation) AnnotatedHTML() (string, error) {
	x.Tree.Annotate()
	out, err := goquery.OuterHtml(x.body)
	if err != nil {
		return "", cetd.Errorf(cetd.EINTERNAL, "failed to render annotated body: %v", err)
	}
	return out, nil
}

func parse(rawHTML string) (*goquery.Document, *goquery.Selection, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, nil, cetd.Errorf(cetd.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, nil, cetd.Errorf(cetd.EINVALID, "failed to parse HTML: %v", err)
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, nil, cetd.Errorf(cetd.EINVALID, "document has no body")
	}
	return doc, body, nil
}

func title(doc *goquery.Document) string {
	return collapseSpace(doc.Find("head title").First().Text())
}

// collapseSpace trims s and replaces every run of whitespace with a single
// space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
