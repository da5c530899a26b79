// File path: internal/store/store.go

// Package store persists the run context between caller interactions: field
// fragments submitted ahead of generation and metadata for uploaded evidence
// artifacts. The engine itself never reads from here; the API layer merges
// the stored fragments into one payload before calling the assembler.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Artifact is the stored metadata of one uploaded evidence file. The file
// content is kept on disk and never parsed by the engine.
type Artifact struct {
	ID        string    `db:"id" json:"id"`
	Filename  string    `db:"filename" json:"filename"`
	Path      string    `db:"path" json:"path"`
	SizeBytes int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Store wraps a pooled sqlx.DB connection to the SQLite context database.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided
// path. The schema is migrated on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("store path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("prepare store directory: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`CREATE TABLE IF NOT EXISTS context_fields (
                key TEXT PRIMARY KEY,
                value TEXT NOT NULL,
                updated_at TIMESTAMP NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS artifacts (
                id TEXT PRIMARY KEY,
                filename TEXT NOT NULL,
                path TEXT NOT NULL,
                size_bytes INTEGER NOT NULL,
                created_at TIMESTAMP NOT NULL
        );`,
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	for i, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// MergeFields upserts submitted payload fragments into the run context,
// later submissions overwriting earlier values for the same key.
func (s *Store) MergeFields(ctx context.Context, fields map[string]json.RawMessage) error {
	if len(fields) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin merge: %w", err)
	}
	now := time.Now().UTC()
	for key, value := range fields {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO context_fields (key, value, updated_at) VALUES (?, ?, ?)
                         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, string(value), now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("store field %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge: %w", err)
	}
	return nil
}

// Fields returns every stored field fragment keyed by payload field name.
func (s *Store) Fields(ctx context.Context) (map[string]json.RawMessage, error) {
	rows := []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT key, value FROM context_fields ORDER BY key`); err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	out := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		out[row.Key] = json.RawMessage(row.Value)
	}
	return out, nil
}

// PayloadJSON folds the stored field fragments into one JSON object ready to
// be decoded as a data record.
func (s *Store) PayloadJSON(ctx context.Context) ([]byte, error) {
	fields, err := s.Fields(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// ClearFields drops every stored field fragment, starting a fresh run.
func (s *Store) ClearFields(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM context_fields`); err != nil {
		return fmt.Errorf("clear fields: %w", err)
	}
	return nil
}

// SaveArtifact persists the metadata of one uploaded evidence file.
func (s *Store) SaveArtifact(ctx context.Context, artifact Artifact) error {
	if strings.TrimSpace(artifact.ID) == "" {
		return errors.New("artifact id required")
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.NamedExecContext(ctx,
		`INSERT INTO artifacts (id, filename, path, size_bytes, created_at)
                 VALUES (:id, :filename, :path, :size_bytes, :created_at)`,
		artifact,
	); err != nil {
		return fmt.Errorf("store artifact %q: %w", artifact.Filename, err)
	}
	return nil
}

// Artifacts lists stored artifact metadata, newest first.
func (s *Store) Artifacts(ctx context.Context) ([]Artifact, error) {
	var out []Artifact
	if err := s.db.SelectContext(ctx, &out,
		`SELECT id, filename, path, size_bytes, created_at FROM artifacts ORDER BY created_at DESC, id`,
	); err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	return out, nil
}
