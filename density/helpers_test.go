package density_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const (
	zoningSentence   = "The quick brown fox jumps over the lazy dog while the committee deliberates on the finer points of municipal zoning law, a subject that has occupied the town council for the better part of three decades without any resolution in sight."
	rainfallSentence = "Meanwhile researchers at the local university published a detailed report describing how seasonal rainfall patterns have shifted over the past century, with profound consequences for agriculture, water management, and the daily lives of residents throughout the valley."
	memorySentence   = "In the final chapter the author reflects on memory and place, arguing that the stories communities tell about themselves shape their willingness to invest in shared infrastructure, public parks, libraries and schools that outlast any single generation."
)

// navAndArticle returns a body with a navigation bar of ten links followed
// by an article with a heading and three long paragraphs.
func navAndArticle() string {
	var b strings.Builder
	b.WriteString("<nav>")
	for i := range 10 {
		fmt.Fprintf(&b, `<a href="/%d">Link%d</a>`, i, i)
	}
	b.WriteString("</nav><article><h1>Title</h1>")
	for _, s := range []string{zoningSentence, rainfallSentence, memorySentence} {
		b.WriteString("<p>" + strings.Repeat(s+" ", 2) + "</p>")
	}
	b.WriteString("</article>")
	return b.String()
}

// parseBody parses inner as the content of a body element and returns the
// body.
func parseBody(t *testing.T, inner string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader("<html><head></head><body>" + inner + "</body></html>"))
	require.NoError(t, err)

	body := findFirst(doc, "body")
	require.NotNil(t, body)
	return body
}

func findFirst(root *html.Node, tag string) *html.Node {
	all := findAll(root, tag)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func findAll(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return out
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()

	var b strings.Builder
	require.NoError(t, html.Render(&b, n))
	return b.String()
}

func hasAnnotations(root *html.Node) bool {
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range n.Attr {
			if strings.HasPrefix(a.Key, "data-cetd-") {
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			stack = append(stack, c)
		}
	}
	return false
}
