package cetd

import (
	"context"
	"time"
)

// Format identifies how extracted content is rendered.
type Format string

// Supported output formats.
const (
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Valid returns true if f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatHTML, FormatText, FormatMarkdown:
		return true
	}
	return false
}

// Document represents the extracted main content of one page.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Engine      Engine    `json:"engine"`
	Format      Format    `json:"format"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Engine == "" {
		return Errorf(EINVALID, "document engine required")
	}
	if !d.Format.Valid() {
		return Errorf(EINVALID, "document format %q not supported", d.Format)
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService represents a service for managing extracted documents.
type DocumentService interface {
	// CreateDocument records a new extraction.
	// ID, ContentHash and ExtractedAt are assigned by the service.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter,
	// most recent extraction first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Engine    *Engine `json:"engine"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
