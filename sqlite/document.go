package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cetd"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cetd.DocumentService = (*DocumentService)(nil)

// DocumentService implements cetd.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes the xxHash of content as 16 hex digits.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

const documentColumns = "id, source_url, title, engine, format, content, content_hash, extracted_at"

// CreateDocument records a new extraction.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *cetd.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.ExtractedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceURL, doc.Title, string(doc.Engine), string(doc.Format),
		doc.Content, doc.ContentHash, formatTime(doc.ExtractedAt))
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*cetd.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cetd.Errorf(cetd.ENOTFOUND, "document %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, most recent first.
// Documents saved within the same timestamp come back in reverse insertion
// order.
func (s *DocumentService) FindDocuments(ctx context.Context, filter cetd.DocumentFilter) ([]*cetd.Document, error) {
	where, args := documentWhere(filter)

	var query strings.Builder
	query.WriteString("SELECT " + documentColumns + " FROM documents")
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*cetd.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// documentWhere returns the conditions selected by filter and their
// arguments.
func documentWhere(filter cetd.DocumentFilter) ([]string, []any) {
	var where []string
	var args []any
	if v := filter.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := filter.SourceURL; v != nil {
		where, args = append(where, "source_url = ?"), append(args, *v)
	}
	if v := filter.Engine; v != nil {
		where, args = append(where, "engine = ?"), append(args, string(*v))
	}
	return where, args
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return cetd.Errorf(cetd.ENOTFOUND, "document %q not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*cetd.Document, error) {
	var doc cetd.Document
	var engine, format, extractedAt string

	if err := row.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &engine, &format,
		&doc.Content, &doc.ContentHash, &extractedAt); err != nil {
		return nil, err
	}

	doc.Engine = cetd.Engine(engine)
	doc.Format = cetd.Format(format)

	var err error
	doc.ExtractedAt, err = parseTime(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
