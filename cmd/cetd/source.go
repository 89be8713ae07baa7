package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"

	"github.com/fwojciec/cetd"
)

// StdinSource is the source argument that reads the page from stdin.
const StdinSource = "-"

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Loader reads the HTML of a page from a URL, a file or stdin.
type Loader struct {
	Fetcher cetd.Fetcher
	Stdin   io.Reader
}

// Load returns the HTML of source together with the location recorded for
// it: the URL or file path as given, or "stdin".
func (l *Loader) Load(ctx context.Context, source string) (html, location string, err error) {
	switch {
	case source == StdinSource:
		if l.Stdin == nil {
			return "", "", cetd.Errorf(cetd.EINVALID, "no stdin available")
		}
		b, err := io.ReadAll(l.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(b), "stdin", nil

	case IsURL(source):
		if l.Fetcher == nil {
			return "", "", cetd.Errorf(cetd.EINTERNAL, "no fetcher configured for %s", source)
		}
		html, err := l.Fetcher.Fetch(ctx, source)
		if err != nil {
			return "", "", err
		}
		return html, source, nil
	}

	b, err := os.ReadFile(source)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", cetd.Errorf(cetd.ENOTFOUND, "file %q not found", source)
	}
	if err != nil {
		return "", "", err
	}
	return string(b), source, nil
}
