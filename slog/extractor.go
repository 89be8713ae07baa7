package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/cetd"
)

// Ensure LoggingExtractor implements cetd.Extractor.
var _ cetd.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. The engine name is
// attached to every line so concurrent extractions can be told apart.
type LoggingExtractor struct {
	next   cetd.Extractor
	engine cetd.Engine
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next cetd.Extractor, engine cetd.Engine, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, engine: engine, logger: logger}
}

// Extract delegates to the wrapped extractor and logs input and output
// sizes.
func (e *LoggingExtractor) Extract(html string) (result *cetd.ExtractResult, err error) {
	defer func(begin time.Time) {
		var contentBytes, textBytes int
		if result != nil {
			contentBytes = len(result.ContentHTML)
			textBytes = len(result.Text)
		}
		e.logger.Info("extract",
			"engine", e.engine,
			"inputBytes", len(html),
			"contentBytes", contentBytes,
			"textBytes", textBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
