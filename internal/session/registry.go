// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates session switches for the conversation engine.
package session

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const registrySchema = `
CREATE TABLE IF NOT EXISTS sessions (
	key         TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	last_active INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_last_active ON sessions(last_active DESC);
`

// ErrRegistryClosed is returned by operations on a closed registry.
var ErrRegistryClosed = errors.New("session registry is closed")

// =============================================================================
// REGISTRY
// =============================================================================

// Entry is one locally known session.
type Entry struct {
	Key        string
	Title      string
	CreatedAt  time.Time
	LastActive time.Time
}

// Registry records the session keys opened on this machine, most recent
// first. It never stores conversation content.
type Registry struct {
	db *sql.DB
}

// OpenRegistry opens (creating if necessary) the registry database at path.
func OpenRegistry(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single writer, single connection: keeps the pure-Go driver simple.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(registrySchema); err != nil {
		db.Close()
		return nil, err
	}

	return &Registry{db: db}, nil
}

// Close releases the registry database.
func (r *Registry) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Touch records that key was activated now, inserting it on first use.
// The title is set on insert and updated only when non-empty, so a session's
// first question can become its title later without being clobbered.
func (r *Registry) Touch(key, title string) error {
	if r.db == nil {
		return ErrRegistryClosed
	}
	now := time.Now().Unix()
	_, err := r.db.Exec(`
		INSERT INTO sessions (key, title, created_at, last_active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			last_active = excluded.last_active,
			title = CASE WHEN excluded.title != '' THEN excluded.title ELSE sessions.title END`,
		key, title, now, now)
	return err
}

// List returns known sessions, most recently active first.
func (r *Registry) List() ([]Entry, error) {
	if r.db == nil {
		return nil, ErrRegistryClosed
	}
	rows, err := r.db.Query(
		"SELECT key, title, created_at, last_active FROM sessions ORDER BY last_active DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, active int64
		if err := rows.Scan(&e.Key, &e.Title, &created, &active); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0)
		e.LastActive = time.Unix(active, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove forgets a session key locally. It does not touch server history.
func (r *Registry) Remove(key string) error {
	if r.db == nil {
		return ErrRegistryClosed
	}
	_, err := r.db.Exec("DELETE FROM sessions WHERE key = ?", key)
	return err
}
