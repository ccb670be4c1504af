// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index tracks converted documents in a SQLite database so batch
// runs can skip sources that have not changed.
// Implements: prd006-batch (R1-R4); docs/ARCHITECTURE § Batch Conversion.
package index

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "index.db"

// Store manages the conversion index database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index database under indexDir, creating the
// schema if it does not exist.
func Open(indexDir string) (*Store, error) {
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		path TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		output_path TEXT NOT NULL,
		converted_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Hash returns the content hash used by the index.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// UpToDate reports whether path was already converted from content with
// this hash and its recorded output still exists.
func (s *Store) UpToDate(ctx context.Context, path, hash string) (bool, error) {
	var storedHash, outputPath string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_hash, output_path FROM documents WHERE path = ?`, path,
	).Scan(&storedHash, &outputPath)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying document %s: %w", path, err)
	}
	if storedHash != hash {
		return false, nil
	}
	if _, err := os.Stat(outputPath); err != nil {
		return false, nil
	}
	return true, nil
}

// Record upserts the conversion record for path.
func (s *Store) Record(ctx context.Context, path, hash, outputPath string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (path, content_hash, output_path, converted_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			content_hash=excluded.content_hash,
			output_path=excluded.output_path,
			converted_at=excluded.converted_at`,
		path, hash, outputPath, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording document %s: %w", path, err)
	}
	return nil
}
