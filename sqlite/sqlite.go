// Package sqlite stores the history of extractions in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations upgrade the schema one version at a time. The database records
// how many have run in PRAGMA user_version; entries are append-only.
var migrations = []string{
	`CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		source_url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		engine TEXT NOT NULL,
		format TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		extracted_at TEXT NOT NULL
	);
	CREATE INDEX idx_documents_source_url ON documents(source_url);
	CREATE INDEX idx_documents_extracted_at ON documents(extracted_at);`,
}

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use MemoryPath for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and migrates the schema to the latest
// version.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite allows a single writer, and an in-memory
	// database exists per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return fmt.Errorf("failed to run %q: %w", p, err)
		}
	}

	db.db = conn

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// SchemaVersion returns the number of migrations applied to the database.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// migrate runs every migration newer than the stored schema version, each
// in its own transaction together with the version bump.
func (db *DB) migrate(ctx context.Context) error {
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, len(migrations))
	}

	for v := version; v < len(migrations); v++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
