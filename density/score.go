package density

import (
	"math"
	"strings"
	"unicode/utf8"
)

// TextDensity scores how text-rich an element is relative to its markup
// and links:
//
//	(C/T) * ln(C*T / (LC*LT)) / ln(ln(C*LC/(C-LC) + ratio*C + e))
//
// where C, T, LC and LT are the character, tag, link character and link tag
// counts of m. An element without text scores 0. T, LC, LT and C-LC are
// each raised to 1 when zero, which keeps every logarithm argument at or
// above 1 and every denominator nonzero.
func TextDensity(m Metrics, ratio float64) float64 {
	if m.CharCount == 0 {
		return 0
	}

	chars := float64(m.CharCount)
	tags := float64(m.TagCount)
	linkChars := float64(m.LinkCharCount)
	linkTags := float64(m.LinkTagCount)
	unlinked := float64(m.CharCount - m.LinkCharCount)

	if tags == 0 {
		tags = 1
	}
	if linkChars == 0 {
		linkChars = 1
	}
	if linkTags == 0 {
		linkTags = 1
	}
	if unlinked == 0 {
		unlinked = 1
	}

	return (chars / tags) * math.Log((chars*tags)/(linkChars*linkTags)) /
		math.Log(math.Log(chars*linkChars/unlinked+ratio*chars+math.E))
}

// GapDensity scores a run of n characters that sits directly inside an
// element rather than inside one of its children.
func GapDensity(n int, ratio float64) float64 {
	if n <= 0 {
		return 0
	}
	l := float64(n)
	return l * math.Log(l) / math.Log(math.Log(ratio*l+math.E))
}

// computeRatio derives the page-level link ratio from the root counts. A
// page without links is treated as having one link character.
func (t *Tree) computeRatio() {
	root := t.metrics[0]
	if root.CharCount == 0 {
		t.ratio = 0
		return
	}
	linkChars := float64(root.LinkCharCount)
	if linkChars == 0 {
		linkChars = 1
	}
	t.ratio = linkChars / float64(root.CharCount)
}

func (t *Tree) computeTextDensity() {
	for i := range t.metrics {
		t.metrics[i].TextDensity = TextDensity(t.metrics[i], t.ratio)
	}
}

// computeDensitySum sets the density sum of every element. A leaf takes
// its text density. Other elements add up the text densities of their
// children and the gap density of every run of text between, before and
// after them.
//
// Runs are found by searching the element's text for each child's text,
// starting where the previous match ended. When a child's text is not found
// the run before it is skipped and the search position stays put.
func (t *Tree) computeDensitySum() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		m := &t.metrics[i]
		if t.firstChild[i] < 0 {
			m.DensitySum = m.TextDensity
			continue
		}

		content := t.text[t.textStart[i]:t.textEnd[i]]
		var sum float64
		from := 0
		t.children(i, func(c int) {
			sum += t.metrics[c].TextDensity

			childContent := t.text[t.textStart[c]:t.textEnd[c]]
			idx := strings.Index(content[from:], childContent)
			if idx < 0 {
				return
			}
			sum += GapDensity(utf8.RuneCountInString(content[from:from+idx]), t.ratio)
			from += idx + len(childContent)
		})
		sum += GapDensity(utf8.RuneCountInString(content[from:]), t.ratio)

		m.DensitySum = sum
	}
}

// findMaxDensitySum records, for every element, the maximum density sum in
// its subtree and the first element in document order that attains it.
func (t *Tree) findMaxDensitySum() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		m := &t.metrics[i]
		m.MaxDensitySum = m.DensitySum
		t.densest[i] = i
		t.children(i, func(c int) {
			if t.metrics[c].MaxDensitySum > m.MaxDensitySum {
				m.MaxDensitySum = t.metrics[c].MaxDensitySum
				t.densest[i] = t.densest[c]
			}
		})
	}
}
