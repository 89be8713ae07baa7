// Package http provides an HTTP-based implementation of cetd.Fetcher
// for pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/cetd"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for one HTTP request.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the fetcher to servers.
const DefaultUserAgent = "cetd/1.0 (+https://github.com/fwojciec/cetd)"

// DefaultRetryDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Fetcher implements cetd.Fetcher at compile time.
var _ cetd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP and decodes it to UTF-8.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	delays    []time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each HTTP request.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the waits between attempts. A request is tried
// once more than the number of delays. No delays disables retries.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		delays:    DefaultRetryDelays(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Network errors, 429 and 5xx responses
// are retried with the configured delays; other failures are returned
// immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		html, err := f.fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		var terr *transientError
		if !errors.As(err, &terr) || ctx.Err() != nil {
			break
		}
	}

	var terr *transientError
	if errors.As(lastErr, &terr) {
		return "", terr.err
	}
	return "", lastErr
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", cetd.Errorf(cetd.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &transientError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", &transientError{err: fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)}
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", cetd.Errorf(cetd.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", cetd.Errorf(cetd.EINVALID, "unsupported content type %q for %s", contentType, url)
	}

	r, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", &transientError{err: err}
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTML reports whether contentType is an HTML media type. A missing
// header is accepted; servers of static files often omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml" ||
		strings.HasPrefix(mediaType, "text/plain")
}

// transientError marks a failure worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }
