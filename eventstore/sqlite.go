package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists events in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed store at path. Use
// ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes
	// writers, which SQLite requires anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		stream  TEXT NOT NULL,
		version INTEGER NOT NULL,
		id      TEXT NOT NULL,
		type    TEXT NOT NULL,
		data    BLOB,
		at      DATETIME NOT NULL,
		PRIMARY KEY (stream, version)
	);

	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append atomically appends events to a stream.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	current, err := streamVersion(ctx, tx, stream)
	if err != nil {
		return 0, err
	}
	if current != expectedVersion {
		return current, ErrConcurrencyConflict
	}

	for i, e := range events {
		version := current + 1 + i
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, data, at) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, version, e.ID, e.Type, []byte(e.Data), e.At.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, fmt.Errorf("insert event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	version := current + len(events)
	for i, e := range events {
		e.Stream = stream
		e.Version = current + 1 + i
	}
	return version, nil
}

// Read returns events with version >= fromVersion in version order.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, at FROM events WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		e := &Event{Stream: stream}
		var data []byte
		var at string
		if err := rows.Scan(&e.Version, &e.ID, &e.Type, &data, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if len(data) > 0 {
			e.Data = data
		}
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", at, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Version returns the current stream version, or -1 for an unknown
// stream.
func (s *SQLiteStore) Version(ctx context.Context, stream string) (int, error) {
	return streamVersion(ctx, s.db, stream)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func streamVersion(ctx context.Context, q querier, stream string) (int, error) {
	var version int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("query version: %w", err)
	}
	return version, nil
}

var _ Store = (*SQLiteStore)(nil)
