/*
Package eventlog persists delivered events in a sqlite database so that
the history of the ledger can be inspected after the fact. Each delivered
transaction is recorded as one operation holding its events in order.
*/
package eventlog

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	op_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	type TEXT NOT NULL,
	attributes TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS events_type ON events (type);
CREATE INDEX IF NOT EXISTS events_op ON events (op_id);
`

// Store writes and reads the event history. Safe for use from a single
// goroutine, matching the delivery loop that feeds it.
type Store struct {
	db *sql.DB
}

// Open opens or creates the event database at the given path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores all events of one delivered operation and returns the
// operation id. Events keep their emission order.
func (s *Store) Record(events []registry.Event) (string, error) {
	opID := uuid.NewString()
	if len(events) == 0 {
		return opID, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return "", errors.Wrap(err, "begin")
	}
	for seq, ev := range events {
		attrs, err := json.Marshal(ev.Attributes)
		if err != nil {
			tx.Rollback()
			return "", errors.Wrap(err, "serialize attributes")
		}
		_, err = tx.Exec(
			`INSERT INTO events (op_id, seq, type, attributes) VALUES (?, ?, ?, ?)`,
			opID, seq, ev.Type, string(attrs))
		if err != nil {
			tx.Rollback()
			return "", errors.Wrap(err, "insert event")
		}
	}
	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit")
	}
	return opID, nil
}

// Entry is one recorded event.
type Entry struct {
	OpID       string
	Seq        int
	Type       string
	Attributes map[string]string
	CreatedAt  time.Time
}

// List returns the most recent events, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT op_id, seq, type, attributes, created_at
		 FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	return scanEntries(rows)
}

// ListByType returns the most recent events of one type, newest first.
func (s *Store) ListByType(typ string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT op_id, seq, type, attributes, created_at
		 FROM events WHERE type = ? ORDER BY id DESC LIMIT ?`, typ, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			attrs string
		)
		if err := rows.Scan(&e.OpID, &e.Seq, &e.Type, &attrs, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan")
		}
		if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
			return nil, errors.Wrap(err, "parse attributes")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "rows")
}
