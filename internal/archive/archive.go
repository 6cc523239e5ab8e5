// Package archive persists each cycle's snapshot to an embedded sqlite
// database. Election night is unrepeatable; the archive is what lets the
// newsroom replay how results moved after the fact.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// Archive stores serialized snapshots, one row per successful cycle.
type Archive struct {
	conn *sql.DB
}

// Entry is one archived snapshot with its capture time.
type Entry struct {
	ID         int64
	CapturedAt time.Time
	Snapshot   models.Snapshot
}

// Open opens (creating if necessary) the archive database at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	a := &Archive{conn: conn}
	if err := a.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return a, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  capturedAt TEXT NOT NULL,
  primaryCount INTEGER NOT NULL,
  payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_capturedAt ON snapshots(capturedAt);
`
	_, err := a.conn.Exec(schema)
	return err
}

// Save appends a snapshot to the archive.
func (a *Archive) Save(ctx context.Context, snapshot models.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	_, err = a.conn.ExecContext(ctx,
		`INSERT INTO snapshots (capturedAt, primaryCount, payload) VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), len(snapshot.Primaries), string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently archived snapshot.
func (a *Archive) Latest(ctx context.Context) (*Entry, error) {
	row := a.conn.QueryRowContext(ctx,
		`SELECT id, capturedAt, payload FROM snapshots ORDER BY id DESC LIMIT 1`)
	return scanEntry(row)
}

// Recent returns up to limit archived snapshots, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := a.conn.QueryContext(ctx,
		`SELECT id, capturedAt, payload FROM snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Count returns the number of archived snapshots.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var count int
	err := a.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&count)
	return count, err
}

// Ping verifies the database is reachable, for readiness checks.
func (a *Archive) Ping(ctx context.Context) error {
	return a.conn.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry      Entry
		capturedAt string
		payload    string
	)
	if err := row.Scan(&entry.ID, &capturedAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, capturedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capture time: %w", err)
	}
	entry.CapturedAt = t

	if err := json.Unmarshal([]byte(payload), &entry.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode archived snapshot: %w", err)
	}

	return &entry, nil
}
