package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cetd"
)

// Ensure LoggingDocumentService implements cetd.DocumentService.
var _ cetd.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging.
type LoggingDocumentService struct {
	next   cetd.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next cetd.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) CreateDocument(ctx context.Context, doc *cetd.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create document",
			"id", doc.ID,
			"url", doc.SourceURL,
			"engine", doc.Engine,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, id string) (doc *cetd.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByID(ctx, id)
}

func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter cetd.DocumentFilter) (docs []*cetd.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find documents",
			"count", len(docs),
			"offset", filter.Offset,
			"limit", filter.Limit,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocuments(ctx, filter)
}

func (s *LoggingDocumentService) DeleteDocument(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDocument(ctx, id)
}
