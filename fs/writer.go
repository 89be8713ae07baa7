// Package fs writes extracted documents to a directory tree.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cetd"
)

// Extension returns the file extension used for documents in format f.
func Extension(f cetd.Format) string {
	switch f {
	case cetd.FormatHTML:
		return ".html"
	case cetd.FormatText:
		return ".txt"
	default:
		return ".md"
	}
}

// URLToPath converts a source URL to a relative file path.
// Example: https://example.com/news/story.html → news/story.md
func URLToPath(rawURL string, f cetd.Format) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", cetd.Errorf(cetd.EINVALID, "invalid source URL %q: %v", rawURL, err)
	}

	ext := Extension(f)
	path := u.Path
	if u.Scheme == "" && u.Host == "" && u.Opaque == "" {
		path = filepath.ToSlash(filepath.Base(path))
	}

	if path == "" || path == "/" || path == "." {
		return "index" + ext, nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index" + ext, nil
	}

	for _, suffix := range []string{".html", ".htm"} {
		if strings.HasSuffix(strings.ToLower(path), suffix) {
			path = path[:len(path)-len(suffix)]
			break
		}
	}
	return path + ext, nil
}

// FormatDocument prefixes the document content with front matter.
func FormatDocument(doc *cetd.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\nengine: ")
	b.WriteString(string(doc.Engine))
	if !doc.ExtractedAt.IsZero() {
		b.WriteString("\nextracted: ")
		b.WriteString(doc.ExtractedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements cetd.DocumentWriter at compile time.
var _ cetd.DocumentWriter = (*Writer)(nil)

// Writer writes documents as files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns where doc would be written.
func (w *Writer) Path(doc *cetd.Document) (string, error) {
	relPath, err := URLToPath(doc.SourceURL, doc.Format)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.baseDir, filepath.FromSlash(relPath)), nil
}

// CreateDocument writes a document to disk. The file is written to a
// temporary name and renamed into place, so readers never see a partial file.
func (w *Writer) CreateDocument(ctx context.Context, doc *cetd.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	fullPath, err := w.Path(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	tmpPath := fullPath + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(FormatDocument(doc)), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
