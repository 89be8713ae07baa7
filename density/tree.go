package density

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Mark is the pruning decision for one element.
type Mark int

// Marks assigned during marking. Remove is the zero value: every element the
// marking pass never reaches is pruned.
const (
	Remove Mark = iota
	Keep
	Ancestor
)

// String returns the lowercase name of the mark.
func (m Mark) String() string {
	switch m {
	case Keep:
		return "keep"
	case Ancestor:
		return "ancestor"
	default:
		return "remove"
	}
}

// Metrics holds the scores computed for one element.
type Metrics struct {
	CharCount     int
	TagCount      int
	LinkCharCount int
	LinkTagCount  int
	TextDensity   float64
	DensitySum    float64
	MaxDensitySum float64
	Mark          Mark
}

// Tree holds the metrics of every element below a root.
//
// Elements are indexed in document order, so the subtree of element i
// occupies indices i through stop[i]-1 and every child has a larger index
// than its parent. Passes that need children before parents iterate the
// indices backwards.
type Tree struct {
	root  *html.Node
	nodes []*html.Node
	index map[*html.Node]int

	parent     []int
	firstChild []int
	nextSib    []int
	stop       []int

	// text is the concatenated text of the root; element i owns
	// text[textStart[i]:textEnd[i]].
	text      string
	textStart []int
	textEnd   []int

	metrics []Metrics
	densest []int

	ratio     float64
	threshold float64
	marked    bool
	pruned    bool
	linkTags  map[string]bool
}

// Analyze scores every element below root without modifying the document.
// It computes character and tag counts, link-adjusted counts, text density,
// density sum, and the densest element of every subtree.
func Analyze(root *html.Node, opts ...Option) (*Tree, error) {
	if err := validateRoot(root); err != nil {
		return nil, err
	}
	c := newConfig(opts)

	t := &Tree{
		root:     root,
		index:    make(map[*html.Node]int),
		linkTags: c.linkTags,
	}
	t.build()
	t.countChars()
	t.countTags()
	t.countLinks()
	t.computeRatio()
	t.computeTextDensity()
	t.computeDensitySum()
	t.findMaxDensitySum()
	return t, nil
}

// build indexes the elements below root in document order and records
// each element's own text length and text span. The walk follows sibling
// and parent pointers, so nesting depth is not limited by the call stack.
func (t *Tree) build() {
	var buf strings.Builder
	cur := -1
	var lastChild []int

	n := t.root
	for n != nil {
		switch n.Type {
		case html.ElementNode:
			i := len(t.nodes)
			t.nodes = append(t.nodes, n)
			t.index[n] = i
			t.parent = append(t.parent, cur)
			t.firstChild = append(t.firstChild, -1)
			t.nextSib = append(t.nextSib, -1)
			t.stop = append(t.stop, 0)
			t.textStart = append(t.textStart, buf.Len())
			t.textEnd = append(t.textEnd, 0)
			t.metrics = append(t.metrics, Metrics{})
			lastChild = append(lastChild, -1)

			if cur >= 0 {
				if lastChild[cur] < 0 {
					t.firstChild[cur] = i
				} else {
					t.nextSib[lastChild[cur]] = i
				}
				lastChild[cur] = i
			}
			cur = i
		case html.TextNode:
			buf.WriteString(n.Data)
			if cur >= 0 {
				t.metrics[cur].CharCount += utf8.RuneCountInString(n.Data)
			}
		}

		if n.Type == html.ElementNode && n.FirstChild != nil {
			n = n.FirstChild
			continue
		}

		for {
			if n.Type == html.ElementNode {
				t.textEnd[cur] = buf.Len()
				t.stop[cur] = len(t.nodes)
				cur = t.parent[cur]
			}
			if n == t.root {
				n = nil
				break
			}
			if n.NextSibling != nil {
				n = n.NextSibling
				break
			}
			n = n.Parent
		}
	}

	t.text = buf.String()
	t.densest = make([]int, len(t.nodes))
}

// Root returns the element the tree was built from.
func (t *Tree) Root() *html.Node {
	return t.root
}

// Len returns the number of elements in the tree, including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Elements returns all elements in document order, starting with the root.
func (t *Tree) Elements() []*html.Node {
	out := make([]*html.Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Metrics returns the metrics of n. The second result is false if n is not
// an element of the tree.
func (t *Tree) Metrics(n *html.Node) (Metrics, bool) {
	i, ok := t.index[n]
	if !ok {
		return Metrics{}, false
	}
	return t.metrics[i], true
}

// Ratio returns the page-level ratio of link characters to all characters
// used by the density formulas.
func (t *Tree) Ratio() float64 {
	return t.ratio
}

// Densest returns the first element in document order whose density sum
// equals the maximum density sum of n's subtree. It returns nil if n is not
// an element of the tree.
func (t *Tree) Densest(n *html.Node) *html.Node {
	i, ok := t.index[n]
	if !ok {
		return nil
	}
	return t.nodes[t.densest[i]]
}

// children calls fn with the index of every child element of i in order.
func (t *Tree) children(i int, fn func(c int)) {
	for c := t.firstChild[i]; c >= 0; c = t.nextSib[c] {
		fn(c)
	}
}

func (t *Tree) isLink(i int) bool {
	return t.linkTags[t.nodes[i].Data]
}
