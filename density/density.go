// Package density implements content extraction via text density (CETD).
//
// Extraction runs a fixed sequence of passes over one parsed body:
//
//  1. Sanitize removes nodes that never carry content (scripts, comments,
//     hidden elements, page chrome).
//  2. Analyze counts characters, tags, and link-attributable characters and
//     tags per element, derives a text density and a density sum from those
//     counts, and records the densest element of every subtree.
//  3. Mark finds the globally densest element, derives a threshold from the
//     densities on its path to the root, and marks every qualifying subtree
//     as content.
//  4. Prune detaches everything that was not marked.
//
// All per-element state lives in a Tree side-car; the document is only
// mutated by Sanitize and Prune. A Tree is not safe for concurrent use.
package density

import (
	"strings"

	"github.com/fwojciec/cetd"
	"golang.org/x/net/html"
)

// Report summarizes one extraction.
type Report struct {
	// Threshold is the minimum text density an element needed to qualify.
	Threshold float64

	// MaxDensitySum is the highest density sum found in the document.
	MaxDensitySum float64

	// Elements is the number of elements scored after sanitizing.
	Elements int

	// Removed is the number of scored elements pruned away.
	Removed int
}

// Kept returns the number of scored elements that survived pruning.
func (r *Report) Kept() int {
	return r.Elements - r.Removed
}

// Option configures sanitizing and analysis.
type Option func(*config)

type config struct {
	ignore   []func(*html.Node) bool
	linkTags map[string]bool
}

func newConfig(opts []Option) *config {
	c := &config{
		linkTags: map[string]bool{"a": true, "button": true, "select": true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithIgnore adds a predicate to the sanitizer. Elements for which fn
// returns true are removed together with their subtree.
func WithIgnore(fn func(n *html.Node) bool) Option {
	return func(c *config) {
		c.ignore = append(c.ignore, fn)
	}
}

// WithLinkTags replaces the set of tags whose subtrees count as links.
// Defaults to a, button and select.
func WithLinkTags(tags ...string) Option {
	return func(c *config) {
		c.linkTags = make(map[string]bool, len(tags))
		for _, tag := range tags {
			c.linkTags[strings.ToLower(tag)] = true
		}
	}
}

// Extract reduces root to its main content in place.
//
// root is usually the <body> element of a parsed document. On return every
// element that did not qualify as content has been detached and no
// annotation attributes remain on the surviving tree.
func Extract(root *html.Node, opts ...Option) (*Report, error) {
	if err := validateRoot(root); err != nil {
		return nil, err
	}

	Sanitize(root, opts...)

	t, err := Analyze(root, opts...)
	if err != nil {
		return nil, err
	}

	threshold := t.Mark()
	removed := t.Prune()
	StripAnnotations(root)

	return &Report{
		Threshold:     threshold,
		MaxDensitySum: t.metrics[0].MaxDensitySum,
		Elements:      t.Len(),
		Removed:       removed,
	}, nil
}

func validateRoot(root *html.Node) error {
	if root == nil {
		return cetd.Errorf(cetd.EINVALID, "extraction root required")
	}
	if root.Type != html.ElementNode {
		return cetd.Errorf(cetd.EINVALID, "extraction root must be an element")
	}
	return nil
}
