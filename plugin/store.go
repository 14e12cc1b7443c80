// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: plugin/store.go
// Summary: Persistence for per-plugin settings: in memory or SQLite.
// Notes: SQLiteStore uses the pure-Go modernc.org/sqlite driver, so no cgo.

package plugin

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Store persists plugin settings as text.
type Store interface {
	// Load returns the stored values for plugin; none stored is not an error.
	Load(plugin string) (map[string]string, error)
	// Save replaces every stored value for plugin.
	Save(plugin string, values map[string]string) error
}

type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Load(plugin string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data[plugin]))
	for k, v := range m.data[plugin] {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Save(plugin string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	m.data[plugin] = cp
	return nil
}

const pluginConfigSchema = `
CREATE TABLE IF NOT EXISTS plugin_config (
    plugin TEXT NOT NULL,
    key    TEXT NOT NULL,
    value  TEXT NOT NULL,
    PRIMARY KEY (plugin, key)
);
`

// SQLiteStore keeps settings in a single plugin_config table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "create plugin store directory")
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(2000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open plugin store")
	}
	// one connection keeps an in-memory database alive and serialises writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(pluginConfigSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create plugin store schema")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(plugin string) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM plugin_config WHERE plugin = ?`, plugin)
	if err != nil {
		return nil, errors.Wrapf(err, "load config for %s", plugin)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, errors.WithStack(err)
		}
		out[k] = v
	}
	return out, errors.WithStack(rows.Err())
}

func (s *SQLiteStore) Save(plugin string, values map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := tx.Exec(`DELETE FROM plugin_config WHERE plugin = ?`, plugin); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "save config for %s", plugin)
	}
	for k, v := range values {
		if _, err := tx.Exec(`INSERT INTO plugin_config (plugin, key, value) VALUES (?, ?, ?)`, plugin, k, v); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "save config for %s", plugin)
		}
	}
	return errors.WithStack(tx.Commit())
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
