package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/cetd"
)

// Run executes the explain command.
func (c *ExplainCmd) Run(deps *Dependencies) error {
	rawHTML, _, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	x, err := deps.Explainer.Explain(rawHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	if c.Annotate {
		out, err := x.AnnotatedHTML()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, out)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Threshold: %.3f\n\n", x.Threshold)

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tC\tT\tLC\tLT\tTD\tDS\tMARK")
	for _, row := range x.Rows() {
		m := row.Metrics
		fmt.Fprintf(tw, "%s%s\t%d\t%d\t%d\t%d\t%.3f\t%.3f\t%s\n",
			strings.Repeat("  ", row.Depth), row.Tag,
			m.CharCount, m.TagCount, m.LinkCharCount, m.LinkTagCount,
			m.TextDensity, m.DensitySum, m.Mark)
	}
	return tw.Flush()
}
