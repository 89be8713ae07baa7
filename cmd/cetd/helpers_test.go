package main_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/cetd"
	main "github.com/fwojciec/cetd/cmd/cetd"
	"github.com/fwojciec/cetd/goquery"
	"github.com/stretchr/testify/require"
)

const (
	zoningParagraph   = "The quick brown fox jumps over the lazy dog while the committee deliberates on the finer points of municipal zoning law, a subject that has occupied the town council for the better part of three decades without any resolution in sight."
	rainfallParagraph = "Meanwhile researchers at the local university published a detailed report describing how seasonal rainfall patterns have shifted over the past century, with profound consequences for agriculture, water management, and the daily lives of residents throughout the valley."
)

// testPage returns a page with a bar of navigation links and one article.
func testPage() string {
	var nav strings.Builder
	for i := range 10 {
		fmt.Fprintf(&nav, "\n<a href=\"/section/%d\">Section%d</a>", i, i)
	}
	return `<!DOCTYPE html>
<html>
<head><title>Town Chronicle</title></head>
<body>
<nav>` + nav.String() + `
</nav>
<article>
<h1>Council News</h1>
<p>` + strings.Repeat(zoningParagraph+" ", 3) + `</p>
<p>` + strings.Repeat(rainfallParagraph+" ", 3) + `</p>
<p>See the <a href="/reports/rainfall">full report</a> for details.</p>
</article>
</body>
</html>`
}

// writePage writes testPage to a file and returns its path.
func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chronicle.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage()), 0644))
	return path
}

// newDeps returns dependencies that read the page from stdin and extract
// with the density engine only.
func newDeps(page string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	density := goquery.NewExtractor()
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Loader:     &main.Loader{Stdin: strings.NewReader(page)},
		Extractors: map[cetd.Engine]cetd.Extractor{cetd.EngineDensity: density},
		Explainer:  density,
		Logger:     slog.New(slog.DiscardHandler),
		Markdown:   main.NewMarkdownConverter,
	}, stdout, stderr
}
