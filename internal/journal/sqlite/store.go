// Package sqlite provides a SQLite-backed trace journal.
//
// The journal is a sink on the machine's emission hook: it records how
// and when SAFE_ON was reached so operators can audit the vote history
// after the fact. The protocol core itself stays persistence-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/virelproto/virel/internal/journal/sqlite/migrations"
	sqlitemigrate "github.com/virelproto/virel/internal/platform/storage/sqlitemigrate"
	"github.com/virelproto/virel/internal/protocol/event"
)

// Store persists trace events in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite trace journal and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append inserts one trace event. It implements event.Sink. When the
// event carries no Seq, the journal assigns the next one.
func (s *Store) Append(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("journal is not configured")
	}
	if !evt.Type.IsValid() {
		return fmt.Errorf("event type is required")
	}
	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var seq any
	if evt.Seq > 0 {
		seq = int64(evt.Seq)
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO trace_events (seq, ts_ms, event_type, domain, token, lamport)
VALUES (?, ?, ?, ?, ?, ?)`,
		seq, toMillis(ts), string(evt.Type), evt.Domain, evt.Token, evt.Lamport)
	if err != nil {
		return fmt.Errorf("insert trace event: %w", err)
	}
	return nil
}

// List returns up to limit trace events with Seq greater than afterSeq,
// in Seq order. A non-positive limit defaults to 100.
func (s *Store) List(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, ts_ms, event_type, domain, token, lamport
FROM trace_events
WHERE seq > ?
ORDER BY seq
LIMIT ?`, int64(afterSeq), limit)
	if err != nil {
		return nil, fmt.Errorf("list trace events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			seq       int64
			tsMillis  int64
			eventType string
			domain    string
			token     string
			lamport   int
		)
		if err := rows.Scan(&seq, &tsMillis, &eventType, &domain, &token, &lamport); err != nil {
			return nil, fmt.Errorf("scan trace event: %w", err)
		}
		events = append(events, event.Event{
			Seq:       uint64(seq),
			Timestamp: fromMillis(tsMillis),
			Type:      event.Type(eventType),
			Domain:    domain,
			Token:     token,
			Lamport:   lamport,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace events: %w", err)
	}
	return events, nil
}
