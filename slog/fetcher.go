// Package slog provides decorators that log calls to the cetd domain
// services with log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cetd"
)

// Ensure LoggingFetcher implements cetd.Fetcher.
var _ cetd.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Failed fetches are logged at
// warn level together with their error code.
type LoggingFetcher struct {
	next   cetd.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next cetd.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		if err != nil {
			f.logger.Warn("fetch failed", append(attrs, "code", cetd.ErrorCode(err), "err", err)...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
