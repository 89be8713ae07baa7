package density_test

import (
	"math"
	"strings"
	"testing"

	"github.com/fwojciec/cetd"
	"github.com/fwojciec/cetd/density"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("keeps the article and drops navigation", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, navAndArticle())

		report, err := density.Extract(body)
		require.NoError(t, err)

		out := render(t, body)
		assert.NotContains(t, out, "Link0")
		assert.NotContains(t, out, "<nav>")
		assert.Contains(t, out, "<h1>Title</h1>")
		assert.Contains(t, out, zoningSentence)
		assert.Contains(t, out, rainfallSentence)
		assert.Contains(t, out, memorySentence)

		assert.Equal(t, 17, report.Elements)
		assert.Equal(t, 11, report.Removed)
		assert.Equal(t, 6, report.Kept())
		assert.InDelta(t, 244.655, report.Threshold, 1e-3)
		assert.InDelta(t, 8666.986, report.MaxDensitySum, 1e-3)
	})

	t.Run("empties a body made only of links", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<a href="/x"><div><p>Short nav link</p></div></a>`)

		report, err := density.Extract(body)
		require.NoError(t, err)

		assert.Equal(t, "<body></body>", render(t, body))
		assert.True(t, math.IsInf(report.Threshold, 1))
		assert.Equal(t, 4, report.Elements)
		assert.Equal(t, 3, report.Removed)
	})

	t.Run("never returns hidden or scripted content", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t,
			`<div style="display: none"><p>`+strings.Repeat("HIDDENSTYLE words ", 50)+`</p></div>`+
				navAndArticle()+
				`<p hidden>`+strings.Repeat("HIDDENATTR words ", 50)+`</p>`+
				`<script>var marker = "SCRIPTED";</script><!-- COMMENTED -->`)

		_, err := density.Extract(body)
		require.NoError(t, err)

		out := render(t, body)
		assert.NotContains(t, out, "HIDDENSTYLE")
		assert.NotContains(t, out, "HIDDENATTR")
		assert.NotContains(t, out, "SCRIPTED")
		assert.NotContains(t, out, "COMMENTED")
		assert.Contains(t, out, zoningSentence)
	})

	t.Run("drops hidden paragraphs with sloppy inline styles", func(t *testing.T) {
		t.Parallel()

		hidden := `<p style="display:none;;">` + strings.Repeat("SLOPPYSTYLE words ", 50) + `</p>`
		body := parseBody(t, strings.Replace(navAndArticle(), "<h1>Title</h1>", "<h1>Title</h1>"+hidden, 1))

		_, err := density.Extract(body)
		require.NoError(t, err)

		out := render(t, body)
		assert.NotContains(t, out, "SLOPPYSTYLE")
		assert.Contains(t, out, rainfallSentence)
	})

	t.Run("handles an empty body", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, "")

		report, err := density.Extract(body)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Elements)
		assert.Equal(t, 0, report.Removed)
		assert.Equal(t, "<body></body>", render(t, body))
	})

	t.Run("removes annotations left on the document", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, navAndArticle())
		tree, err := density.Analyze(body)
		require.NoError(t, err)
		tree.Annotate()
		require.True(t, hasAnnotations(body))

		_, err = density.Extract(body)
		require.NoError(t, err)

		assert.False(t, hasAnnotations(body))
	})

	t.Run("honors options", func(t *testing.T) {
		t.Parallel()

		body := parseBody(t, `<div class="promo"><p>`+strings.Repeat("PROMOTED words ", 80)+`</p></div>`+navAndArticle())
		isPromo := func(n *html.Node) bool {
			for _, a := range n.Attr {
				if a.Key == "class" && a.Val == "promo" {
					return true
				}
			}
			return false
		}

		_, err := density.Extract(body, density.WithIgnore(isPromo))
		require.NoError(t, err)

		out := render(t, body)
		assert.NotContains(t, out, "PROMOTED")
		assert.Contains(t, out, memorySentence)
	})
}

func TestExtract_DeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 10000

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parent := body
	for range depth {
		div := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		parent.AppendChild(div)
		parent = div
	}
	text := &html.Node{Type: html.TextNode, Data: "deep content"}
	parent.AppendChild(text)

	report, err := density.Extract(body)
	require.NoError(t, err)

	assert.Equal(t, depth+1, report.Elements)
	assert.Equal(t, 0, report.Removed)

	n := text
	for n.Parent != nil {
		n = n.Parent
	}
	assert.Same(t, body, n)
}

func TestExtract_InvalidRoot(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		_, err := density.Extract(nil)

		assert.Equal(t, cetd.EINVALID, cetd.ErrorCode(err))
	})

	t.Run("document node", func(t *testing.T) {
		t.Parallel()

		doc, err := html.Parse(strings.NewReader("<p>x</p>"))
		require.NoError(t, err)

		_, err = density.Extract(doc)

		assert.Equal(t, cetd.EINVALID, cetd.ErrorCode(err))
	})
}
