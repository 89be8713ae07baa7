package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cetd"
	"github.com/fwojciec/cetd/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Loader     *Loader
	Extractors map[cetd.Engine]cetd.Extractor
	Explainer  *goquery.Extractor
	Documents  cetd.DocumentService

	// Markdown returns the converter for content loaded from location.
	Markdown func(location string) cetd.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log fetches, extractions and storage calls to stderr"`
	Timeout time.Duration `default:"10s" env:"CETD_TIMEOUT" help:"Fetch timeout per page"`
	Settle  time.Duration `default:"0s" env:"CETD_SETTLE" help:"With --browser, wait until the page stops changing for this long"`
	DB      string        `name:"db" default:"${db_path}" env:"CETD_DB" help:"Extraction history database"`

	Extract ExtractCmd `cmd:"" help:"Extract the main content of a page"`
	Explain ExplainCmd `cmd:"" help:"Show the density metrics of every element of a page"`
	Compare CompareCmd `cmd:"" help:"Run every engine on a page side by side"`
	History HistoryCmd `cmd:"" help:"List saved extractions"`
	Show    ShowCmd    `cmd:"" help:"Print a saved extraction"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved extraction"`
}

// needsHistory reports whether the named command reads or writes the
// extraction history.
func (c *CLI) needsHistory(name string) bool {
	switch name {
	case "history", "show", "delete":
		return true
	case "extract":
		return c.Extract.Save
	}
	return false
}

// source returns the page source of the named command and whether it
// should be rendered in a browser.
func (c *CLI) source(name string) (string, bool) {
	switch name {
	case "extract":
		return c.Extract.Source, c.Extract.Browser
	case "explain":
		return c.Explain.Source, c.Explain.Browser
	case "compare":
		return c.Compare.Source, c.Compare.Browser
	}
	return "", false
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source  string      `arg:"" help:"URL, file path, or - for stdin"`
	Engine  cetd.Engine `short:"e" default:"density" enum:"density,readability,trafilatura" help:"Extraction engine (density, readability, trafilatura)"`
	Format  cetd.Format `short:"f" default:"markdown" enum:"html,text,markdown" help:"Output format (html, text, markdown)"`
	Browser bool        `short:"b" help:"Render the page in a headless browser"`
	OutDir  string      `short:"o" name:"out-dir" help:"Write the document under this directory instead of stdout"`
	Save    bool        `short:"s" help:"Record the extraction in the history database"`
}

// ExplainCmd is the "explain" subcommand.
type ExplainCmd struct {
	Source   string `arg:"" help:"URL, file path, or - for stdin"`
	Browser  bool   `short:"b" help:"Render the page in a headless browser"`
	Annotate bool   `short:"a" help:"Print the body with metrics as data attributes"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source  string `arg:"" help:"URL, file path, or - for stdin"`
	Browser bool   `short:"b" help:"Render the page in a headless browser"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only list extractions of this source"`
	Engine string `short:"e" help:"Only list extractions made with this engine"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of extractions to list"`
	Offset int    `help:"Number of extractions to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Extraction ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Extraction ID"`
	Force bool   `help:"Confirm deletion"`
}
