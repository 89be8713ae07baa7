package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cetd"
	"github.com/fwojciec/cetd/fs"
	"github.com/fwojciec/cetd/htmltomarkdown"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	ext, ok := deps.Extractors[c.Engine]
	if !ok {
		err := cetd.Errorf(cetd.EINVALID, "unknown engine %q", c.Engine)
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	rawHTML, location, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	result, err := ext.Extract(rawHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}

	content, err := render(result, c.Format, deps.Markdown(location))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
		return err
	}
	if content == "" {
		fmt.Fprintln(deps.Stderr, "warning: no main content found")
	}

	doc := &cetd.Document{
		SourceURL: location,
		Title:     result.Title,
		Engine:    c.Engine,
		Format:    c.Format,
		Content:   content,
	}

	if c.Save {
		if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved extraction %s\n", doc.ID)
	}

	if c.OutDir != "" {
		w := fs.NewWriter(c.OutDir)
		path, err := w.Path(doc)
		if err == nil {
			err = w.CreateDocument(deps.Ctx, doc)
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cetd.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		return nil
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}

// NewMarkdownConverter returns an HTML to Markdown converter. Relative
// links are resolved against location when it is a URL.
func NewMarkdownConverter(location string) cetd.Converter {
	var opts []htmltomarkdown.Option
	if IsURL(location) {
		opts = append(opts, htmltomarkdown.WithBaseURL(location))
	}
	return htmltomarkdown.NewConverter(opts...)
}

func render(result *cetd.ExtractResult, format cetd.Format, md cetd.Converter) (string, error) {
	switch format {
	case cetd.FormatHTML:
		return result.ContentHTML, nil
	case cetd.FormatText:
		return result.Text, nil
	}

	if strings.TrimSpace(result.ContentHTML) == "" {
		return "", nil
	}
	return md.Convert(result.ContentHTML)
}
