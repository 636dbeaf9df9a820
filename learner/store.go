package learner

import (
	"connect4/game"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by a Store with nothing persisted yet.
var ErrNotFound = errors.New("q-table not found")

// Store persists a whole Q-table as a flat state -> action -> value mapping.
type Store interface {
	Save(Table) error
	Load() (Table, error)
}

// OpenStore picks the store for path by extension: .db, .sqlite and .sqlite3
// are SQLite databases, anything else is a JSON document.
func OpenStore(path string) Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqliteStore{path: path}
	default:
		return jsonStore{path: path}
	}
}

type jsonStore struct {
	path string
}

func (s jsonStore) Save(t Table) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a truncated table
	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create q-table file: %w", err)
	}
	defer os.Remove(f.Name())

	if err := json.NewEncoder(f).Encode(t); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode q-table: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close q-table file: %w", err)
	}
	if err := os.Rename(f.Name(), s.path); err != nil {
		return fmt.Errorf("failed to move q-table into place: %w", err)
	}
	return nil
}

func (s jsonStore) Load() (Table, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read q-table file: %w", err)
	}

	t := Table{}
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode q-table: %w", err)
	}
	if t == nil { // "null" document
		t = Table{}
	}
	// {"state": null} decodes to a nil action map
	for state, actions := range t {
		if actions == nil {
			t[state] = map[int]float64{}
		}
	}
	return t, nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS q_values (
	state  TEXT    NOT NULL,
	action INTEGER NOT NULL,
	value  REAL    NOT NULL,
	PRIMARY KEY (state, action)
);
`

type sqliteStore struct {
	path string
}

func (s sqliteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return db, nil
}

func (s sqliteStore) Save(t Table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The whole table is replaced, like the JSON document
	if _, err := tx.Exec("DELETE FROM q_values"); err != nil {
		return fmt.Errorf("failed to clear q-values: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO q_values (state, action, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for state, actions := range t {
		for action, value := range actions {
			if _, err := stmt.Exec(string(state), action, value); err != nil {
				return fmt.Errorf("failed to insert q-value: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit q-values: %w", err)
	}
	return nil
}

func (s sqliteStore) Load() (Table, error) {
	// Opening a missing database would create it
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT state, action, value FROM q_values")
	if err != nil {
		return nil, fmt.Errorf("failed to query q-values: %w", err)
	}
	defer rows.Close()

	t := Table{}
	for rows.Next() {
		var (
			state  string
			action int
			value  float64
		)
		if err := rows.Scan(&state, &action, &value); err != nil {
			return nil, fmt.Errorf("failed to scan q-value: %w", err)
		}
		t.set(game.StateKey(state), action, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read q-values: %w", err)
	}
	return t, nil
}
