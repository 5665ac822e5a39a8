// Package prefs persists small key/value preferences such as profile
// selections and the skip-tests flag.
package prefs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
)

// DefaultNamespace scopes the keys written by this tool.
const DefaultNamespace = "mavenview"

// Store is a namespaced key/value store. Reads are served from memory;
// Set and Remove take effect in memory immediately and reach durable
// storage on Flush.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Flush() error
	Close() error
}

// PersistenceError reports a failed load or flush.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("preferences %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open opens the configured backend below dir.
func Open(fs filesystem.FileSystem, backend, dir, namespace string, logger *slog.Logger) (Store, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	switch backend {
	case "", BackendFile:
		return OpenFileStore(fs, dir, namespace, logger), nil
	case BackendSQLite:
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, &PersistenceError{Op: "open", Err: err}
		}
		return OpenSQLiteStore(filepath.Join(dir, "prefs.db"), namespace)
	default:
		return nil, fmt.Errorf("invalid prefs backend: %s (must be file or sqlite)", backend)
	}
}

// MemoryStore keeps everything in memory; Flush is a no-op.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *MemoryStore) Flush() error { return nil }
func (m *MemoryStore) Close() error { return nil }
