// Package hymn maintains the local catalog of hymns (kidung) referenced by
// the liturgy schedule's song columns.
package hymn

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrHymnNotFound indicates the catalog has no entry for a (book, number) pair.
var ErrHymnNotFound = errors.New("hymn not found in catalog")

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Hymn is one catalog entry.
type Hymn struct {
	Book      string
	Number    int
	Title     string
	Info      string
	Tune      string
	Beat      string
	SourceURL string
}

// Store manages hymn catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the hymn catalog database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("ensure catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Get returns the catalog entry for a (book, number) pair.
func (s *Store) Get(ctx context.Context, book string, number int) (*Hymn, error) {
	h := &Hymn{}
	var info, tune, beat, sourceURL sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT book, number, title, info, tune, beat, source_url
         FROM hymns WHERE book = ? AND number = ?`,
		strings.ToUpper(book), number,
	).Scan(&h.Book, &h.Number, &h.Title, &info, &tune, &beat, &sourceURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %d", ErrHymnNotFound, strings.ToUpper(book), number)
	}
	if err != nil {
		return nil, fmt.Errorf("query hymn: %w", err)
	}
	h.Info = info.String
	h.Tune = tune.String
	h.Beat = beat.String
	h.SourceURL = sourceURL.String
	return h, nil
}

// Put inserts or replaces a catalog entry.
func (s *Store) Put(ctx context.Context, h *Hymn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO hymns (book, number, title, info, tune, beat, source_url, fetched_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(h.Book),
		h.Number,
		h.Title,
		nullableString(h.Info),
		nullableString(h.Tune),
		nullableString(h.Beat),
		nullableString(h.SourceURL),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert hymn: %w", err)
	}
	return nil
}

// Count returns the number of catalog entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM hymns").Scan(&n); err != nil {
		return 0, fmt.Errorf("count hymns: %w", err)
	}
	return n, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
