// Package profiles tracks which build profiles the user selected per project.
package profiles

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/tlcsdm/eclipse-maven-view/internal/events"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/prefs"
)

const keyPrefix = "selectedProfiles."

// Key returns the preference key holding a project's selection.
func Key(project string) string {
	return keyPrefix + project
}

// Manager owns the per-project profile selection. Selections are loaded
// from the store on first use; afterwards the in-memory copy is
// authoritative and every change is written through.
type Manager struct {
	store  prefs.Store
	sink   events.Sink
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu          sync.Mutex
	loaded      bool
	initialized bool
	selected    []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithSink sets the notification sink.
func WithSink(sink events.Sink) Option {
	return func(m *Manager) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.OrDiscard(logger)
	}
}

// NewManager creates a Manager backed by store.
func NewManager(store prefs.Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		sink:    events.Nop{},
		logger:  logging.Discard(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// entry returns the project's entry, holding only the map lock.
func (m *Manager) entry(project string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[project]
	if !ok {
		e = &entry{}
		m.entries[project] = e
	}
	return e
}

// ensureLoaded must be called with e.mu held.
func (m *Manager) ensureLoaded(project string, e *entry) {
	if e.loaded {
		return
	}
	e.loaded = true

	value, ok := m.store.Get(Key(project))
	if !ok {
		return
	}
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" && !contains(e.selected, id) {
			e.selected = append(e.selected, id)
		}
	}
}

// GetSelected returns a copy of the selected profile ids in selection order.
func (m *Manager) GetSelected(project string) []string {
	e := m.entry(project)
	e.mu.Lock()
	defer e.mu.Unlock()

	m.ensureLoaded(project, e)
	return append([]string{}, e.selected...)
}

// IsSelected reports whether id is part of the project's selection.
func (m *Manager) IsSelected(project, id string) bool {
	return contains(m.GetSelected(project), id)
}

// Toggle adds or removes id. Repeating the same call changes nothing but
// still persists the current state.
func (m *Manager) Toggle(project, id string, selected bool) {
	e := m.entry(project)
	e.mu.Lock()

	m.ensureLoaded(project, e)
	e.initialized = true

	changed := false
	switch {
	case selected && !contains(e.selected, id):
		e.selected = append(e.selected, id)
		changed = true
	case !selected && contains(e.selected, id):
		e.selected = remove(e.selected, id)
		changed = true
	}

	m.persist(project, e.selected)
	e.mu.Unlock()

	if changed {
		m.sink.SelectionChanged(project)
	}
}

// Replace sets the whole selection at once.
func (m *Manager) Replace(project string, ids []string) {
	e := m.entry(project)
	e.mu.Lock()

	m.ensureLoaded(project, e)
	e.initialized = true

	var next []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" && !contains(next, id) {
			next = append(next, id)
		}
	}
	changed := !equal(e.selected, next)
	e.selected = next

	m.persist(project, e.selected)
	e.mu.Unlock()

	if changed {
		m.sink.SelectionChanged(project)
	}
}

// InitializeDefaults applies ids as the selection when the project has no
// stored selection and was not initialized in this session. It reports
// whether the defaults were applied.
func (m *Manager) InitializeDefaults(project string, ids []string) bool {
	e := m.entry(project)
	e.mu.Lock()

	m.ensureLoaded(project, e)
	if e.initialized || len(e.selected) > 0 {
		e.initialized = true
		e.mu.Unlock()
		return false
	}
	e.initialized = true

	for _, id := range ids {
		if !contains(e.selected, id) {
			e.selected = append(e.selected, id)
		}
	}
	if len(e.selected) == 0 {
		e.mu.Unlock()
		return false
	}

	m.persist(project, e.selected)
	e.mu.Unlock()

	m.sink.SelectionChanged(project)
	return true
}

// Initialized reports whether defaults were applied or the user changed the
// selection during this session.
func (m *Manager) Initialized(project string) bool {
	e := m.entry(project)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// persist writes the whole selection; failures are logged, never returned.
func (m *Manager) persist(project string, selected []string) {
	key := Key(project)
	if len(selected) == 0 {
		m.store.Remove(key)
	} else {
		m.store.Set(key, strings.Join(selected, ","))
	}

	if err := m.store.Flush(); err != nil {
		m.logger.Error("failed to persist profile selection",
			slog.String("project", project),
			slog.Any("error", err))
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func remove(values []string, v string) []string {
	result := values[:0:0]
	for _, s := range values {
		if s != v {
			result = append(result, s)
		}
	}
	return result
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
