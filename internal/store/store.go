// Package store persists the bot settings in a single-row sqlite table.
//
// The only setting is the pre-notification lead in minutes. The table is
// created and seeded on open, so a fresh container starts with the default
// lead without any migration step. The driver is modernc.org/sqlite, which
// keeps the container image a static Go build (no CGO, no libsqlite3).
package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Lead range accepted by SetLeadMinutes, and the value seeded on first use.
const (
	LeadMin     = 3
	LeadMax     = 15
	DefaultLead = 5
)

// Settings is the sqlite-backed settings store. Safe for concurrent use
// by the command handlers and the scheduler.
type Settings struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens (creating if necessary) the settings database at path and
// ensures the schema and the seed row exist.
func Open(path string) (*Settings, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}

	s := &Settings{db: db}
	if err := s.ensure(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Settings) Close() error {
	return s.db.Close()
}

func (s *Settings) ensure() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		lead_minutes INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create settings schema: %w", err)
	}

	const seed = `
	INSERT OR IGNORE INTO settings (id, lead_minutes, updated_at)
	VALUES (1, ?, datetime('now'));`
	if _, err := s.db.Exec(seed, DefaultLead); err != nil {
		return fmt.Errorf("seed settings row: %w", err)
	}
	return nil
}

// LeadMinutes returns the stored lead, clamped to [LeadMin, LeadMax].
// Any read failure yields DefaultLead; the scheduler must keep running
// even when the settings file is briefly unreadable.
func (s *Settings) LeadMinutes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lead int
	err := s.db.QueryRow(`SELECT lead_minutes FROM settings WHERE id = 1`).Scan(&lead)
	if err != nil {
		return DefaultLead
	}
	if lead < LeadMin {
		return LeadMin
	}
	if lead > LeadMax {
		return LeadMax
	}
	return lead
}

// SetLeadMinutes stores a new lead. Values outside [LeadMin, LeadMax]
// are rejected.
func (s *Settings) SetLeadMinutes(minutes int) error {
	if minutes < LeadMin || minutes > LeadMax {
		return fmt.Errorf("lead_minutes must be between %d and %d, got %d", LeadMin, LeadMax, minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE settings SET lead_minutes = ?, updated_at = datetime('now') WHERE id = 1`,
		minutes,
	)
	if err != nil {
		return fmt.Errorf("update lead_minutes: %w", err)
	}
	return nil
}
