// Package rod provides a cetd.Fetcher that renders pages in headless Chrome,
// for sites whose content only exists after JavaScript runs.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/cetd"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one page load, including rendering.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements cetd.Fetcher at compile time.
var _ cetd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout time.Duration
	settle  time.Duration

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the limit for loading and rendering one page.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle makes Fetch wait after the load event until the page has
// stopped changing for d. Zero, the default, returns right after load.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher launches a headless Chrome browser and connects to it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// serialized DOM. A fetcher that was closed reports EINVALID.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	browser := f.currentBrowser()
	if browser == nil {
		return "", cetd.Errorf(cetd.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}
	if f.settle > 0 {
		if err := page.WaitStable(f.settle); err != nil {
			return "", fmt.Errorf("waiting for %s to settle: %w", url, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down and kills its process. Close is safe to
// call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 after
// Close.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

func (f *Fetcher) currentBrowser() *rod.Browser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.browser
}
