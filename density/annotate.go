package density

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// AnnotationPrefix starts the name of every attribute written by Annotate.
const AnnotationPrefix = "data-cetd-"

// Annotate writes the metrics of every element onto the element as
// data-cetd-* attributes, replacing earlier annotations. Marks are written
// as computed so far; call Mark first to see the pruning decision.
func (t *Tree) Annotate() {
	for i, n := range t.nodes {
		m := t.metrics[i]
		stripAnnotations(n)
		n.Attr = append(n.Attr,
			html.Attribute{Key: AnnotationPrefix + "char-count", Val: strconv.Itoa(m.CharCount)},
			html.Attribute{Key: AnnotationPrefix + "tag-count", Val: strconv.Itoa(m.TagCount)},
			html.Attribute{Key: AnnotationPrefix + "link-char-count", Val: strconv.Itoa(m.LinkCharCount)},
			html.Attribute{Key: AnnotationPrefix + "link-tag-count", Val: strconv.Itoa(m.LinkTagCount)},
			html.Attribute{Key: AnnotationPrefix + "text-density", Val: formatFloat(m.TextDensity)},
			html.Attribute{Key: AnnotationPrefix + "density-sum", Val: formatFloat(m.DensitySum)},
			html.Attribute{Key: AnnotationPrefix + "max-density-sum", Val: formatFloat(m.MaxDensitySum)},
			html.Attribute{Key: AnnotationPrefix + "mark", Val: m.Mark.String()},
		)
	}
}

// StripAnnotations removes every data-cetd-* attribute from root and its
// descendants.
func StripAnnotations(root *html.Node) {
	if root == nil {
		return
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stripAnnotations(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				stack = append(stack, c)
			}
		}
	}
}

func stripAnnotations(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if !strings.HasPrefix(a.Key, AnnotationPrefix) {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
