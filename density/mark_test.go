package density_test

import (
	"math"
	"testing"

	"github.com/fwojciec/cetd/density"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Parallel()

	t.Run("keeps the densest subtree and its ancestors", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<div><p>Hello <b>world</b></p><a href="#">Go <i>now</i></a></div><span>!</span>`)
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		threshold := tree.Mark()

		root, _ := tree.Metrics(body)
		assert.InDelta(t, root.TextDensity, threshold, 1e-12)

		want := map[string]density.Mark{
			"body": density.Ancestor,
			"div":  density.Ancestor,
			"p":    density.Keep,
			"b":    density.Keep,
			"a":    density.Remove,
			"i":    density.Remove,
			"span": density.Remove,
		}
		for tag, mark := range want {
			m, _ := tree.Metrics(findFirst(body, tag))
			assert.Equal(t, mark, m.Mark, tag)
		}
	})

	t.Run("uses the lowest text density on the path to the root", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, navAndArticle())
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		threshold := tree.Mark()

		assert.InDelta(t, 244.655, threshold, 1e-3)
		article, _ := tree.Metrics(findFirst(body, "article"))
		nav, _ := tree.Metrics(findFirst(body, "nav"))
		assert.Equal(t, density.Keep, article.Mark)
		assert.Equal(t, density.Remove, nav.Mark)
	})

	t.Run("keeps qualifying siblings of the densest element", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<div>aaaa aaaa<p>bbbb</p>cccc cccc</div><div>aaaa aaaa<p>bbbb</p>cccc cccc</div>`)
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		tree.Mark()

		for _, n := range findAll(body, "div") {
			m, _ := tree.Metrics(n)
			assert.Equal(t, density.Keep, m.Mark)
		}
	})

	t.Run("qualifies nothing when no element has unlinked text", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<a href="/x"><div><p>Short nav link</p></div></a>`)
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		threshold := tree.Mark()

		assert.True(t, math.IsInf(threshold, 1))
		for _, n := range tree.Elements() {
			m, _ := tree.Metrics(n)
			assert.Equal(t, density.Remove, m.Mark, n.Data)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, navAndArticle())
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		first := tree.Mark()
		marks := make([]density.Mark, 0, tree.Len())
		for _, n := range tree.Elements() {
			m, _ := tree.Metrics(n)
			marks = append(marks, m.Mark)
		}

		assert.Equal(t, first, tree.Mark())
		for i, n := range tree.Elements() {
			m, _ := tree.Metrics(n)
			assert.Equal(t, marks[i], m.Mark, n.Data)
		}
	})
}

func TestMark_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "remove", density.Remove.String())
	assert.Equal(t, "keep", density.Keep.String())
	assert.Equal(t, "ancestor", density.Ancestor.String())
}

func TestPrune(t *testing.T) {
	t.Parallel()

	t.Run("detaches unmarked elements", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<div><p>Hello <b>world</b></p><a href="#">Go <i>now</i></a></div><span>!</span>`)
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		removed := tree.Prune()

		assert.Equal(t, 3, removed)
		assert.Equal(t, "<body><div><p>Hello <b>world</b></p></div></body>", render(t, body))
	})

	t.Run("runs only once", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, navAndArticle())
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		assert.Equal(t, 11, tree.Prune())
		assert.Equal(t, 0, tree.Prune())
		assert.Nil(t, findFirst(body, "nav"))
		assert.NotNil(t, findFirst(body, "article"))
	})

	t.Run("empties a root that was not marked", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<a href="/x"><div><p>Short nav link</p></div></a>`)
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		assert.Equal(t, 3, tree.Prune())
		assert.Nil(t, body.FirstChild)
	})

	t.Run("keeps a root that was marked as content", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<ul><li><a href="/1">One</a></li><li><a href="/2">Two</a></li></ul><p>text</p>`)
		tree, err := density.Analyze(body)
		require.NoError(t, err)

		assert.Equal(t, 0, tree.Prune())
		assert.Len(t, findAll(body, "li"), 2)
	})
}
