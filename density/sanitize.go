package density

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
	"golang.org/x/net/html"
)

// ignoredElements matches elements that never hold main content: metadata,
// scripts, embedded frames, forms, page chrome and vector graphics. The
// hidden attribute is matched here too since user agents render it as
// display: none.
var ignoredElements = cascadia.MustCompile(
	"script, style, noscript, head, link, meta, hr, br, iframe, form, " +
		"figure, figcaption, aside, footer, header, svg, [hidden]",
)

// Sanitize removes comments, ignored elements and hidden elements below
// root. Children are filtered before the survivors are descended into, so
// removed subtrees are never visited. Sanitize is idempotent.
func Sanitize(root *html.Node, opts ...Option) {
	if root == nil {
		return
	}
	c := newConfig(opts)

	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			if c.ignored(child) {
				n.RemoveChild(child)
			}
			child = next
		}

		for child := n.LastChild; child != nil; child = child.PrevSibling {
			if child.Type == html.ElementNode {
				stack = append(stack, child)
			}
		}
	}
}

func (c *config) ignored(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode:
		return true
	case html.ElementNode:
	default:
		return false
	}

	if ignoredElements.Match(n) || isDisplayNone(n) {
		return true
	}
	for _, fn := range c.ignore {
		if fn(n) {
			return true
		}
	}
	return false
}

// isDisplayNone reports whether the inline style of n resolves display to
// none. Declarations marked !important win over later plain ones; otherwise
// the last declaration wins. Malformed declarations are skipped one by one,
// so the rest of the style still applies.
func isDisplayNone(n *html.Node) bool {
	style, ok := attr(n, "style")
	if !ok || !strings.Contains(strings.ToLower(style), "display") {
		return false
	}

	var display string
	var important bool
	for _, raw := range splitDeclarations(style) {
		decls, err := parser.ParseDeclarations(raw + ";")
		if err != nil {
			continue
		}
		for _, d := range decls {
			if !strings.EqualFold(strings.TrimSpace(d.Property), "display") {
				continue
			}
			if important && !d.Important {
				continue
			}
			value := strings.ToLower(strings.TrimSpace(d.Value))
			value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
			display = value
			important = important || d.Important
		}
	}
	return display == "none"
}

// splitDeclarations cuts a declaration list at semicolons outside of
// parentheses and strings. Empty declarations are dropped. An unclosed
// string or comment ends the list.
func splitDeclarations(style string) []string {
	var decls []string
	var cur strings.Builder
	flush := func() {
		if d := strings.TrimSpace(cur.String()); d != "" {
			decls = append(decls, d)
		}
		cur.Reset()
	}

	depth := 0
	s := scanner.New(style)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			flush()
			return decls
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			switch tok.Value {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ";":
				if depth == 0 {
					flush()
					continue
				}
			}
		}
		cur.WriteString(tok.Value)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
