package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cetd"
	"github.com/fwojciec/cetd/goquery"
	cetdhttp "github.com/fwojciec/cetd/http"
	"github.com/fwojciec/cetd/readability"
	"github.com/fwojciec/cetd/rod"
	cetdslog "github.com/fwojciec/cetd/slog"
	"github.com/fwojciec/cetd/sqlite"
	"github.com/fwojciec/cetd/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewMain().Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when the source argument is "-".
	Stdin io.Reader

	// SQLite database holding the extraction history. Opened only by
	// commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cetd"),
		kong.Description("Extract the main content of web pages by text density"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db_path": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cetd --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(cli.Verbose, stderr)
	deps.Logger = logger

	name := strings.Fields(kongCtx.Command())[0]

	if cli.needsHistory(name) {
		if err := m.openHistory(cli.DB); err != nil {
			fmt.Fprintln(stderr, "Hint: Set CETD_DB to use a different database path")
			return err
		}
		defer m.Close()
		deps.Documents = cetdslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), logger)
	}

	source, browser := cli.source(name)
	loader := &Loader{Stdin: m.Stdin}
	if IsURL(source) {
		fetcher, err := openFetcher(browser, cli.Timeout, cli.Settle)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		loader.Fetcher = cetdslog.NewLoggingFetcher(fetcher, logger)
	}
	deps.Loader = loader

	deps.Markdown = NewMarkdownConverter
	density := goquery.NewExtractor()
	deps.Explainer = density
	deps.Extractors = map[cetd.Engine]cetd.Extractor{
		cetd.EngineDensity:     cetdslog.NewLoggingExtractor(density, cetd.EngineDensity, logger),
		cetd.EngineReadability: cetdslog.NewLoggingExtractor(readability.NewExtractor(), cetd.EngineReadability, logger),
		cetd.EngineTrafilatura: cetdslog.NewLoggingExtractor(trafilatura.NewExtractor(), cetd.EngineTrafilatura, logger),
	}

	return kongCtx.Run(deps)
}

// openHistory opens the history database at path, creating its directory
// on first use.
func (m *Main) openHistory(path string) error {
	if path != sqlite.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func openFetcher(browser bool, timeout, settle time.Duration) (cetd.Fetcher, error) {
	if browser {
		return rod.NewFetcher(rod.WithFetchTimeout(timeout), rod.WithSettle(settle))
	}
	return cetdhttp.NewFetcher(cetdhttp.WithTimeout(timeout)), nil
}

// newLogger returns a text logger on w when verbose, otherwise a logger
// that drops everything.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cetd.db"
	}
	return filepath.Join(home, ".cetd", "cetd.db")
}
