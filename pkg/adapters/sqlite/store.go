// Package sqlite implements the board store on an SQLite database using the
// pure-Go modernc.org/sqlite driver.
//
// Snapshot semantics match the file store: Save rewrites the notes table in
// one transaction, and Clear drops the table entirely, so "record absent"
// (no table) stays distinguishable from "empty board" (empty table).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/aretw0/corkboard/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	x           REAL NOT NULL,
	y           REAL NOT NULL,
	content     TEXT NOT NULL,
	color       TEXT NOT NULL,
	stack_order INTEGER NOT NULL,
	width       REAL NOT NULL,
	height      REAL NOT NULL
);`

// Config holds the configuration for the SQLite store.
type Config struct {
	// Path is the database file. Use a real file even in tests: with the
	// pooled database/sql handle, ":memory:" gives every connection its
	// own empty database.
	Path string
	// Logger receives malformed-row warnings. Optional.
	Logger *slog.Logger
}

// Store implements core.Store on an SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore opens the database with the production pragmas applied.
func NewStore(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize implements core.Store. The notes table is created lazily by
// Save, so a fresh database still reports an absent record; Initialize only
// verifies connectivity.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// Load implements core.Store. A missing notes table is an absent record.
func (s *Store) Load(ctx context.Context) ([]core.Note, bool, error) {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, x, y, content, color, stack_order, width, height
		FROM notes ORDER BY seq`)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []core.Note{}
	for rows.Next() {
		var n core.Note
		if err := rows.Scan(&n.ID, &n.X, &n.Y, &n.Content, &n.Color, &n.Stack, &n.W, &n.H); err != nil {
			return nil, false, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return notes, true, nil
}

// Save implements core.Store: the table is rewritten in one transaction so a
// reader never observes a partial snapshot.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notes (id, x, y, content, color, stack_order, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range notes {
		if _, err := stmt.ExecContext(ctx, n.ID, n.X, n.Y, n.Content, string(n.Color), n.Stack, n.W, n.H); err != nil {
			return fmt.Errorf("failed to insert note %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

// Clear implements core.Store by dropping the table: the record becomes
// absent, not empty.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS notes`); err != nil {
		return fmt.Errorf("failed to drop notes table: %w", err)
	}
	return nil
}

func (s *Store) tableExists(ctx context.Context) (bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'notes'`).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return true, nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sqlite"
}

var _ core.Store = (*Store)(nil)
