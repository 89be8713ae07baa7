package density

// countChars turns each element's own text length, recorded by build, into
// the length of its full text content.
func (t *Tree) countChars() {
	for i := len(t.nodes) - 1; i > 0; i-- {
		t.metrics[t.parent[i]].CharCount += t.metrics[i].CharCount
	}
}

// countTags sets the number of descendant elements of every element.
func (t *Tree) countTags() {
	for i := len(t.nodes) - 1; i > 0; i-- {
		t.metrics[t.parent[i]].TagCount += t.metrics[i].TagCount + 1
	}
}

// countLinks sets the link-adjusted character and tag counts.
//
// A link element and everything below it is fully link-attributable. Any
// other element sums its children, and additionally counts one link tag per
// child that is a link element or whose subtree consists only of links.
func (t *Tree) countLinks() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		m := &t.metrics[i]

		if t.isLink(i) {
			for j := i; j < t.stop[i]; j++ {
				t.metrics[j].LinkCharCount = t.metrics[j].CharCount
				t.metrics[j].LinkTagCount = t.metrics[j].TagCount
			}
			continue
		}

		m.LinkCharCount = 0
		m.LinkTagCount = 0
		t.children(i, func(c int) {
			cm := &t.metrics[c]
			m.LinkCharCount += cm.LinkCharCount
			m.LinkTagCount += cm.LinkTagCount
			if t.isLink(c) || isFullyLinked(cm) {
				m.LinkTagCount++
			}
		})
	}
}

func isFullyLinked(m *Metrics) bool {
	return m.LinkTagCount != 0 &&
		m.LinkTagCount == m.TagCount &&
		m.LinkCharCount == m.CharCount
}
