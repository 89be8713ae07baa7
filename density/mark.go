package density

import "math"

// Mark decides which elements are content and returns the threshold used.
//
// The densest element of the document is kept together with its subtree and
// every element on its path to the root becomes an ancestor. The threshold
// is the lowest text density on that path. Then, walking down from the
// root, every element at or above the threshold keeps the densest element of
// its own subtree as well. Elements below the threshold are not descended
// into.
//
// If no element has a positive density sum, nothing qualifies and the
// threshold is +Inf. That happens when every leaf scores zero text density,
// either because its text is linked or because it is a single character,
// and no gap text between children scores either.
//
// Mark is idempotent; later calls return the first threshold.
func (t *Tree) Mark() float64 {
	if t.marked {
		return t.threshold
	}
	t.marked = true

	for i := range t.metrics {
		t.metrics[i].Mark = Remove
	}

	if t.metrics[0].MaxDensitySum <= 0 {
		t.threshold = math.Inf(1)
		return t.threshold
	}

	t.threshold = t.findThreshold()
	t.markContent(t.threshold)
	return t.threshold
}

// findThreshold keeps the globally densest element and returns the lowest
// text density found between it and the root, inclusive.
func (t *Tree) findThreshold() float64 {
	target := t.densest[0]
	t.keep(target)

	threshold := t.metrics[target].TextDensity
	for p := t.parent[target]; p >= 0; p = t.parent[p] {
		if d := t.metrics[p].TextDensity; d <= threshold {
			threshold = d
		}
		t.metrics[p].Mark = Ancestor
	}
	return threshold
}

func (t *Tree) markContent(threshold float64) {
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		m := &t.metrics[i]
		if m.Mark == Keep || m.TextDensity < threshold {
			continue
		}

		if target := t.densest[i]; t.metrics[target].Mark != Keep {
			t.keep(target)
			for p := t.parent[target]; p >= 0; p = t.parent[p] {
				t.metrics[p].Mark = Ancestor
			}
		}

		// Push in reverse so children are visited in document order.
		first := len(stack)
		t.children(i, func(c int) {
			stack = append(stack, c)
		})
		for l, r := first, len(stack)-1; l < r; l, r = l+1, r-1 {
			stack[l], stack[r] = stack[r], stack[l]
		}
	}
}

// keep marks the subtree of i as content.
func (t *Tree) keep(i int) {
	for j := i; j < t.stop[i]; j++ {
		t.metrics[j].Mark = Keep
	}
}

// Prune detaches every element that was not marked as content and returns
// the number of elements removed. Kept subtrees are retained wholesale;
// ancestors are descended into and keep their text. When the root itself
// was not marked, all of its children are removed. Prune calls Mark if it
// has not run yet; later calls do nothing and return 0.
func (t *Tree) Prune() int {
	if t.pruned {
		return 0
	}
	t.pruned = true
	t.Mark()

	switch t.metrics[0].Mark {
	case Keep:
		return 0
	case Remove:
		for c := t.root.FirstChild; c != nil; c = t.root.FirstChild {
			t.root.RemoveChild(c)
		}
		return len(t.nodes) - 1
	}

	removed := 0
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t.children(i, func(c int) {
			switch t.metrics[c].Mark {
			case Remove:
				n := t.nodes[c]
				n.Parent.RemoveChild(n)
				removed += t.stop[c] - c
			case Ancestor:
				stack = append(stack, c)
			}
		})
	}
	return removed
}
