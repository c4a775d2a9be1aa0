package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "journal.db"

// Operation names recorded in the journal.
const (
	OpInsert           = "insert"
	OpRemove           = "remove"
	OpList             = "list"
	OpLinearSearch     = "linear_search"
	OpBinarySearch     = "binary_search"
	OpSortByRarity     = "sort_rarity"
	OpSortByIdentifier = "sort_identifier"
)

// Outcome values recorded in the journal.
const (
	OutcomeOK        = "ok"
	OutcomeMiss      = "miss"
	OutcomeDuplicate = "duplicate"
	OutcomeFull      = "full"
	OutcomeNotFound  = "not_found"
	OutcomeRejected  = "rejected"
)

// Journal lifecycle errors.
var (
	ErrClosed    = errors.New("journal is closed")
	ErrNoSession = errors.New("no session started")
)

// Entry is one recorded operation.
type Entry struct {
	EntryID     string    `json:"entry_id"`
	SessionID   string    `json:"session_id"`
	Operation   string    `json:"operation"`
	Backend     string    `json:"backend"`
	Algorithm   string    `json:"algorithm,omitempty"`
	Size        int       `json:"size"`
	Comparisons int       `json:"comparisons"`
	Swaps       int       `json:"swaps"`
	Outcome     string    `json:"outcome"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Journal is a handle on journal.db. The zero value is not usable; call Open.
type Journal struct {
	mu        sync.Mutex
	db        *sql.DB
	dir       string
	sessionID string
}

// Open creates dataDir if needed, opens journal.db and applies the schema.
func Open(dataDir string) (*Journal, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// A single connection keeps writes ordered.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply journal schema: %w", err)
		}
	}

	return &Journal{db: db, dir: dataDir}, nil
}

// Dir returns the data directory holding journal.db.
func (j *Journal) Dir() string { return j.dir }

// StartSession registers a new session and makes it current for Record.
func (j *Journal) StartSession(backend string, capacity int) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return "", ErrClosed
	}

	id := newID()
	_, err := j.db.Exec(
		"INSERT INTO sessions (session_id, backend, capacity, started_at) VALUES (?, ?, ?, ?)",
		id, backend, capacity, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	j.sessionID = id
	return id, nil
}

// Record appends e to the current session. EntryID, SessionID and
// RecordedAt are filled in when empty.
func (j *Journal) Record(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return ErrClosed
	}
	if e.SessionID == "" {
		if j.sessionID == "" {
			return ErrNoSession
		}
		e.SessionID = j.sessionID
	}
	if e.EntryID == "" {
		e.EntryID = newID()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	_, err := j.db.Exec(
		`INSERT INTO operations (entry_id, session_id, operation, backend, algorithm, size, comparisons, swaps, outcome, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EntryID, e.SessionID, e.Operation, e.Backend, e.Algorithm, e.Size,
		e.Comparisons, e.Swaps, e.Outcome, e.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// Entries returns every recorded operation, oldest first.
func (j *Journal) Entries() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(
		`SELECT entry_id, session_id, operation, backend, algorithm, size, comparisons, swaps, outcome, recorded_at
		 FROM operations ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		if err := rows.Scan(&e.EntryID, &e.SessionID, &e.Operation, &e.Backend, &e.Algorithm,
			&e.Size, &e.Comparisons, &e.Swaps, &e.Outcome, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return entries, nil
}

// Close ends the current session, if any, and closes the database.
// Close is idempotent.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil
	}
	if j.sessionID != "" {
		if _, err := j.db.Exec(
			"UPDATE sessions SET ended_at = ? WHERE session_id = ?",
			time.Now().UTC().Format(time.RFC3339Nano), j.sessionID,
		); err != nil {
			j.db.Close()
			j.db = nil
			return fmt.Errorf("end session: %w", err)
		}
		j.sessionID = ""
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// newID generates a UUID v7 so entries sort by creation time.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
