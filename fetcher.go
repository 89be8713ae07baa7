package cetd

import "context"

// Fetcher loads pages from the web for extraction.
type Fetcher interface {
	// Fetch returns the HTML of the page at url as UTF-8. Missing pages
	// report ENOTFOUND.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close shuts down any browser or connection the fetcher started.
	Close() error
}
