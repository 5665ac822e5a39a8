// Package dispatch turns selected tree nodes into Maven invocations and
// runs them, isolating failures per unit.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tlcsdm/eclipse-maven-view/internal/launch"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/tree"
)

const unitIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Selection supplies the profiles a project is built with.
type Selection interface {
	ActiveProfiles(ctx context.Context, project *models.Project) []string
}

// RequestDescriber is implemented by launchers that can describe the Maven
// request a run configuration results in.
type RequestDescriber interface {
	Request(cfg models.RunConfiguration) (maven.Request, error)
}

// Dispatcher runs the units derived from a node selection.
type Dispatcher struct {
	invoker   maven.Invoker
	launcher  launch.Launcher
	selection Selection
	skipTests bool
	parallel  int
	progress  io.Writer
	logger    *slog.Logger

	mu sync.Mutex
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSkipTests adds -DskipTests to phase invocations.
func WithSkipTests(skip bool) Option {
	return func(d *Dispatcher) {
		d.skipTests = skip
	}
}

// WithParallel sets how many units may run at once. Values below one mean
// sequential execution.
func WithParallel(n int) Option {
	return func(d *Dispatcher) {
		if n < 1 {
			n = 1
		}
		d.parallel = n
	}
}

// WithProgress writes per-unit progress lines to w.
func WithProgress(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.progress = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logging.OrDiscard(logger)
	}
}

// New creates a Dispatcher.
func New(invoker maven.Invoker, launcher launch.Launcher, selection Selection, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		invoker:   invoker,
		launcher:  launcher,
		selection: selection,
		parallel:  1,
		progress:  io.Discard,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Plan derives the units for nodes without running anything. Phase nodes
// are grouped per project in first-seen order with distinct phases in
// canonical order; every goal and run configuration is its own unit.
// Goals run in their short prefix:goal form without profiles.
func (d *Dispatcher) Plan(ctx context.Context, nodes []tree.Node) ([]Unit, error) {
	type phaseGroup struct {
		project *models.Project
		phases  []models.Phase
	}

	var (
		groups []*phaseGroup
		byName = make(map[string]*phaseGroup)
		others []Unit
	)

	for _, n := range nodes {
		switch node := n.(type) {
		case *tree.PhaseNode:
			project := node.Project()
			g, ok := byName[project.Name]
			if !ok {
				g = &phaseGroup{project: project}
				byName[project.Name] = g
				groups = append(groups, g)
			}
			g.phases = append(g.phases, node.Phase())

		case *tree.PluginGoalNode:
			project := node.Project()
			command := node.Command()
			others = append(others, Unit{
				Kind:    UnitGoal,
				Project: project.Name,
				Target:  command,
				Request: &maven.Request{
					Project:    project.Name,
					WorkingDir: project.RootPath,
					Goals:      []string{command},
				},
			})

		case *tree.RunConfigNode:
			cfg := node.Config()
			u := Unit{
				Kind:    UnitRunConfig,
				Project: node.Project().Name,
				Target:  cfg.Name,
				Config:  &cfg,
			}
			if describer, ok := d.launcher.(RequestDescriber); ok {
				if req, err := describer.Request(cfg); err == nil {
					u.Request = &req
				}
			}
			others = append(others, u)
		}
	}

	if len(groups) == 0 && len(others) == 0 {
		return nil, ErrNothingSelected
	}

	units := make([]Unit, 0, len(groups)+len(others))
	for _, g := range groups {
		goals := make([]string, 0, len(g.phases))
		for _, p := range models.SortPhases(g.phases) {
			goals = append(goals, string(p))
		}
		units = append(units, Unit{
			Kind:    UnitPhases,
			Project: g.project.Name,
			Target:  strings.Join(goals, " "),
			Request: &maven.Request{
				Project:    g.project.Name,
				WorkingDir: g.project.RootPath,
				Goals:      goals,
				Profiles:   d.profiles(ctx, g.project),
				SkipTests:  d.skipTests,
			},
		})
	}
	units = append(units, others...)

	for i := range units {
		id, err := gonanoid.Generate(unitIDAlphabet, 8)
		if err != nil {
			return nil, fmt.Errorf("failed to generate unit id: %w", err)
		}
		units[i].ID = id
	}

	return units, nil
}

// Dispatch plans and runs the units for nodes. A failing unit never stops
// the others; its error is recorded in the report as a *DispatchError.
// Units that have not started when ctx is cancelled are reported as
// skipped. The returned error is only non-nil when nothing could be
// planned.
func (d *Dispatcher) Dispatch(ctx context.Context, nodes []tree.Node) (*Report, error) {
	units, err := d.Plan(ctx, nodes)
	if err != nil {
		return nil, err
	}

	report := &Report{Outcomes: make([]Outcome, len(units))}

	g := new(errgroup.Group)
	g.SetLimit(d.parallel)
	for i, u := range units {
		g.Go(func() error {
			report.Outcomes[i] = d.run(ctx, i, len(units), u)
			return nil
		})
	}
	_ = g.Wait()

	if failed := report.Failed(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, o := range failed {
			names = append(names, o.Unit.String())
		}
		d.printf("\n⚠️  %d invocation(s) failed: %s\n", len(failed), strings.Join(names, ", "))
	}

	return report, nil
}

func (d *Dispatcher) run(ctx context.Context, i, total int, u Unit) Outcome {
	if ctx.Err() != nil {
		d.logger.Debug("skipping unit", slog.String("unit", u.ID), slog.String("project", u.Project))
		return Outcome{Unit: u, Skipped: true}
	}

	d.printf("📦 [%d/%d] %s: %s\n", i+1, total, u.Project, u.Target)
	start := time.Now()

	var err error
	switch u.Kind {
	case UnitRunConfig:
		if d.launcher == nil {
			err = errors.New("no launcher configured")
			break
		}
		err = d.launcher.Launch(ctx, *u.Config)
	default:
		err = d.invoker.Run(ctx, *u.Request)
	}

	outcome := Outcome{Unit: u, Duration: time.Since(start)}
	if err != nil {
		outcome.Err = &DispatchError{UnitID: u.ID, Kind: u.Kind, Project: u.Project, Target: u.Target, Err: err}
		d.logger.Warn("invocation failed",
			slog.String("unit", u.ID),
			slog.String("project", u.Project),
			slog.String("target", u.Target),
			slog.Any("error", err))
		d.printf("❌ Failed: %s: %v\n", u, err)
		return outcome
	}

	d.printf("✓ Success: %s\n", u)
	return outcome
}

func (d *Dispatcher) profiles(ctx context.Context, project *models.Project) string {
	if d.selection == nil {
		return ""
	}
	return strings.Join(d.selection.ActiveProfiles(ctx, project), ",")
}

func (d *Dispatcher) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.progress, format, args...)
}
