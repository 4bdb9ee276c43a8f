// Package history keeps a local sqlite log of every mutating catalog call.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/printcat/internal/migrations"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one recorded catalog mutation.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Action    string // e.g. "update_product"
	Target    string // SKU, tag name or category id
	Payload   string // JSON body that was sent, if any
	OK        bool
	Error     string
}

// Manager owns the activity database.
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record stores one entry. payload is JSON-encoded when not nil.
func (m *Manager) Record(action, target string, payload any, callErr error) error {
	payloadJSON := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		payloadJSON = string(data)
	}

	errText := ""
	if callErr != nil {
		errText = callErr.Error()
	}

	query := `
		INSERT INTO activity (timestamp, action, target, payload, ok, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		time.Now().Local().Format(timestampLayout),
		action,
		target,
		payloadJSON,
		callErr == nil,
		errText,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Recent returns at most limit entries, newest first.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	return m.query(`
		SELECT id, timestamp, action, target, COALESCE(payload, ''), ok, COALESCE(error, '')
		FROM activity
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// ForTarget returns at most limit entries about one SKU, tag or category,
// newest first.
func (m *Manager) ForTarget(target string, limit int) ([]Entry, error) {
	return m.query(`
		SELECT id, timestamp, action, target, COALESCE(payload, ''), ok, COALESCE(error, '')
		FROM activity
		WHERE target = ?
		ORDER BY id DESC
		LIMIT ?
	`, target, limit)
}

func (m *Manager) query(query string, args ...any) ([]Entry, error) {
	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestamp string
		if err := rows.Scan(&e.ID, &timestamp, &e.Action, &e.Target, &e.Payload, &e.OK, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Timestamp = parseTimestamp(timestamp)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// parseTimestamp accepts the stored layout and RFC 3339
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// Clear removes every entry.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM activity"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// GetCount returns the number of stored entries.
func (m *Manager) GetCount() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
