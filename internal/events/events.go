// Package events delivers change notifications to the front end.
package events

import (
	"log/slog"
	"sync"

	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
)

// Sink receives notifications about changed projects and selections.
type Sink interface {
	ProjectChanged(project string)
	SelectionChanged(project string)
}

// Nop ignores every notification.
type Nop struct{}

func (Nop) ProjectChanged(string)   {}
func (Nop) SelectionChanged(string) {}

// LogSink writes notifications to a logger at debug level.
type LogSink struct {
	logger *slog.Logger
}

var _ Sink = (*LogSink)(nil)

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logging.OrDiscard(logger)}
}

func (s *LogSink) ProjectChanged(project string) {
	s.logger.Debug("project changed", slog.String("project", project))
}

func (s *LogSink) SelectionChanged(project string) {
	s.logger.Debug("profile selection changed", slog.String("project", project))
}

// Event is one recorded notification.
type Event struct {
	Kind    string
	Project string
}

const (
	KindProjectChanged   = "project-changed"
	KindSelectionChanged = "selection-changed"
)

// Recorder keeps notifications in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) ProjectChanged(project string) {
	r.record(KindProjectChanged, project)
}

func (r *Recorder) SelectionChanged(project string) {
	r.record(KindSelectionChanged, project)
}

func (r *Recorder) record(kind, project string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: kind, Project: project})
}

// Events returns a copy of what was recorded.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
