// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of completed downloads. The ledger
// is informational only; it is never consulted to skip a download.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/study-planner/pkg/types"
)

const (
	defaultLimit = 20

	// timeLayout has fixed width so timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Entry is one recorded download.
type Entry struct {
	ID       string        `json:"id" yaml:"id"`
	Time     time.Time     `json:"time" yaml:"time"`
	Subject  types.Subject `json:"subject" yaml:"subject"`
	Grade    types.Grade   `json:"grade" yaml:"grade"`
	Title    string        `json:"title" yaml:"title"`
	Chapter  int           `json:"chapter" yaml:"chapter"`
	URL      string        `json:"url" yaml:"url"`
	Location string        `json:"location" yaml:"location"`
	Bytes    int           `json:"bytes" yaml:"bytes"`
}

// Store manages the ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at cfg.Path, creating its directory and
// schema when missing.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			id TEXT PRIMARY KEY,
			fetched_at TEXT NOT NULL,
			subject TEXT NOT NULL,
			grade INTEGER NOT NULL,
			title TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			url TEXT NOT NULL,
			location TEXT NOT NULL,
			bytes INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_fetched_at ON downloads(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e, assigning an ID and timestamp when they are unset, and
// returns the stored entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.Time = e.Time.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloads (id, fetched_at, subject, grade, title, chapter, url, location, bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time.Format(timeLayout), e.Subject.Label(), int(e.Grade),
		e.Title, e.Chapter, e.URL, e.Location, e.Bytes,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording download %s: %w", e.URL, err)
	}
	return e, nil
}

// List returns up to limit entries, most recent first. A limit of zero or
// less uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fetched_at, subject, grade, title, chapter, url, location, bytes
		 FROM downloads ORDER BY fetched_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			ts      string
			subject string
			grade   int
		)
		if err := rows.Scan(&e.ID, &ts, &subject, &grade, &e.Title, &e.Chapter, &e.URL, &e.Location, &e.Bytes); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Time, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", e.ID, err)
		}
		e.Subject, _ = types.SubjectFromLabel(subject)
		e.Grade = types.Grade(grade)
		out = append(out, e)
	}
	return out, rows.Err()
}
