package prefs

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps preferences in a SQLite table. Changes are buffered
// and written in one transaction by Flush.
type SQLiteStore struct {
	db        *sql.DB
	namespace string

	mu      sync.Mutex
	values  map[string]string
	pending map[string]*string // nil value means delete
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if needed) the database at path.
// Use ":memory:" for an in-memory database.
func OpenSQLiteStore(path, namespace string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	// a single connection keeps ":memory:" databases stable across queries
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "migrate", Err: err}
	}

	s := &SQLiteStore{
		db:        db,
		namespace: namespace,
		values:    make(map[string]string),
		pending:   make(map[string]*string),
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return s, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) load() error {
	rows, err := s.db.Query(`SELECT key, value FROM prefs WHERE namespace = ?`, s.namespace)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		s.values[key] = value
	}
	return rows.Err()
}

func (s *SQLiteStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *SQLiteStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.pending[key] = &value
}

func (s *SQLiteStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.pending[key] = nil
}

func (s *SQLiteStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}

	for key, value := range s.pending {
		if value == nil {
			_, err = tx.Exec(`DELETE FROM prefs WHERE namespace = ? AND key = ?`, s.namespace, key)
		} else {
			_, err = tx.Exec(`INSERT INTO prefs (namespace, key, value) VALUES (?, ?, ?)
				ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`, s.namespace, key, *value)
		}
		if err != nil {
			_ = tx.Rollback()
			return &PersistenceError{Op: "flush", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}

	s.pending = make(map[string]*string)
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
