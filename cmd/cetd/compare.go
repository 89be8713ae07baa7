package main

import (
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/cetd"
	"golang.org/x/sync/errgroup"
)

// previewRunes is how much of each engine's text compare prints.
const previewRunes = 60

// comparison is the outcome of one engine on the compared page.
type comparison struct {
	engine cetd.Engine
	result *cetd.ExtractResult
	err    error
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	rawHTML, _, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	engines := cetd.Engines()
	results := make([]comparison, len(engines))

	// An engine failure is reported in its row and does not cancel the
	// others. Wait returns the first one for the log.
	var g errgroup.Group
	for i, engine := range engines {
		g.Go(func() error {
			results[i].engine = engine
			ext, ok := deps.Extractors[engine]
			if !ok {
				results[i].err = cetd.Errorf(cetd.ENOTIMPLEMENTED, "engine %q not configured", engine)
			} else {
				results[i].result, results[i].err = ext.Extract(rawHTML)
			}
			if results[i].err != nil {
				return fmt.Errorf("%s: %w", engine, results[i].err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		deps.Logger.Warn("compare engine failed", "err", err)
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tTITLE\tHTML\tTEXT\tPREVIEW")
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(tw, "%s\terror: %s\t\t\t\n", r.engine, cetd.ErrorMessage(r.err))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.engine, r.result.Title,
			humanize.Bytes(uint64(len(r.result.ContentHTML))),
			humanize.Bytes(uint64(len(r.result.Text))),
			preview(r.result.Text))
	}
	return tw.Flush()
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes]) + "..."
}
