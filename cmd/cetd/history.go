package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/cetd"
	"github.com/fwojciec/cetd/fs"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := cetd.DocumentFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}
	if c.Engine != "" {
		engine := cetd.Engine(c.Engine)
		filter.Engine = &engine
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions found. Use 'cetd extract --save' to record one.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-11s  %-8s  %8s  %s\n",
			doc.ID, doc.ExtractedAt.Format("2006-01-02 15:04"), doc.Engine, doc.Format,
			humanize.Bytes(uint64(len(doc.Content))), doc.SourceURL)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, fs.FormatDocument(doc))
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return cetd.Errorf(cetd.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted extraction %s\n", c.ID)
	return nil
}
