package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"gopkg.in/yaml.v3"
)

// FileStore keeps one YAML document per namespace. Flush replaces the
// whole file through a temporary file and a rename.
type FileStore struct {
	fs   filesystem.FileSystem
	dir  string
	path string

	mu      sync.Mutex
	flushMu sync.Mutex
	values  map[string]string
}

var _ Store = (*FileStore)(nil)

// OpenFileStore loads <dir>/<namespace>.yaml if it exists. A file that
// cannot be read or parsed is logged and ignored; the store starts empty
// and the next Flush replaces it.
func OpenFileStore(fs filesystem.FileSystem, dir, namespace string, logger *slog.Logger) *FileStore {
	s := &FileStore{
		fs:     fs,
		dir:    dir,
		path:   filepath.Join(dir, namespace+".yaml"),
		values: make(map[string]string),
	}

	if err := s.load(); err != nil {
		logging.OrDiscard(logger).Warn("ignoring unreadable preferences",
			slog.String("path", s.path),
			slog.Any("error", &PersistenceError{Op: "load", Err: err}))
		s.values = make(map[string]string)
	}
	return s
}

func (s *FileStore) load() error {
	data, err := s.fs.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if values != nil {
		s.values = values
	}
	return nil
}

// Path is the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *FileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *FileStore) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	data, err := yaml.Marshal(s.values)
	s.mu.Unlock()
	if err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
