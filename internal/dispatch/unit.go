package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// ErrNothingSelected is returned when no runnable node was selected.
var ErrNothingSelected = errors.New("no phase, goal or run configuration selected")

// UnitKind identifies what a unit invokes.
type UnitKind string

const (
	UnitPhases    UnitKind = "phases"
	UnitGoal      UnitKind = "goal"
	UnitRunConfig UnitKind = "run-configuration"
)

// Unit is one independent invocation.
type Unit struct {
	ID      string   `json:"id"`
	Kind    UnitKind `json:"kind"`
	Project string   `json:"project"`

	// Target is the phase list, the prefix:goal or the configuration name.
	Target string `json:"target"`

	// Request is set for phase and goal units, and for run configurations
	// whose launcher can describe the invocation.
	Request *maven.Request `json:"request,omitempty"`

	// Config is set for run-configuration units.
	Config *models.RunConfiguration `json:"config,omitempty"`
}

func (u Unit) String() string {
	return fmt.Sprintf("%s %s", u.Project, u.Target)
}

// DispatchError reports a failed unit.
type DispatchError struct {
	UnitID  string
	Kind    UnitKind
	Project string
	Target  string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Project, e.Target, e.Kind, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Outcome is the result of one unit.
type Outcome struct {
	Unit     Unit
	Err      error
	Skipped  bool
	Duration time.Duration
}

// Succeeded reports whether the unit ran without error.
func (o Outcome) Succeeded() bool {
	return !o.Skipped && o.Err == nil
}

// Report collects the outcomes of a dispatch in unit order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes that ended in an error.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Skipped returns the outcomes of units that never started.
func (r *Report) Skipped() []Outcome {
	var skipped []Outcome
	for _, o := range r.Outcomes {
		if o.Skipped {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// Err joins every unit error, or returns nil when all units succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}

// Summary is a one-line account of the report.
func (r *Report) Summary() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d succeeded", len(r.Outcomes)-len(r.Failed())-len(r.Skipped())))
	if n := len(r.Failed()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	if n := len(r.Skipped()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	return strings.Join(parts, ", ")
}
