package tree

import (
	"context"
	"log/slog"

	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// MetadataSource supplies extracted project metadata.
type MetadataSource interface {
	Profiles(ctx context.Context, project *models.Project) []models.Profile
	Plugins(ctx context.Context, project *models.Project) []models.Plugin
	Dependencies(ctx context.Context, project *models.Project) []models.Dependency
}

// SelectionState exposes the profile selection of each project.
type SelectionState interface {
	GetSelected(project string) []string
	Initialized(project string) bool
	InitializeDefaults(project string, ids []string) bool
}

// RunConfigSource resolves the run configurations of a project.
type RunConfigSource interface {
	Resolve(ctx context.Context, project *models.Project) []models.RunConfiguration
}

// Builder holds the collaborators nodes consult when computing children.
type Builder struct {
	projects  []*models.Project
	metadata  MetadataSource
	selection SelectionState
	runConfig RunConfigSource
	phases    []models.Phase
	skipTests bool
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithRunConfigurations sets the run configuration source.
func WithRunConfigurations(src RunConfigSource) Option {
	return func(b *Builder) {
		b.runConfig = src
	}
}

// WithDisplayedPhases limits the phases shown for each project. They are
// always shown in canonical order.
func WithDisplayedPhases(phases []models.Phase) Option {
	return func(b *Builder) {
		if len(phases) > 0 {
			b.phases = models.SortPhases(phases)
		}
	}
}

// WithSkipTests marks the test phase as skipped.
func WithSkipTests(skip bool) Option {
	return func(b *Builder) {
		b.skipTests = skip
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logging.OrDiscard(logger)
	}
}

// NewBuilder creates a Builder over the displayed projects.
func NewBuilder(projects []*models.Project, metadata MetadataSource, selection SelectionState, opts ...Option) *Builder {
	b := &Builder{
		projects:  projects,
		metadata:  metadata,
		selection: selection,
		phases:    models.Phases(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SkipTests reports whether the test phase is skipped.
func (b *Builder) SkipTests() bool {
	return b.skipTests
}

// DisplayedPhases returns the configured phases in canonical order.
func (b *Builder) DisplayedPhases() []models.Phase {
	return append([]models.Phase(nil), b.phases...)
}

// Roots returns one project node per displayed project.
func (b *Builder) Roots(context.Context) []Node {
	roots := make([]Node, 0, len(b.projects))
	for _, p := range b.projects {
		roots = append(roots, b.ProjectNode(p))
	}
	return roots
}

// ProjectNode returns the node of a project.
func (b *Builder) ProjectNode(p *models.Project) *ProjectNode {
	return &ProjectNode{b: b, project: p}
}

// Project finds a displayed project by name.
func (b *Builder) Project(name string) (*models.Project, bool) {
	for _, p := range b.projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// selectedProfiles returns the selection, applying the activeByDefault
// profiles once per session when nothing is selected yet.
func (b *Builder) selectedProfiles(project *models.Project, profiles []models.Profile) []string {
	selected := b.selection.GetSelected(project.Name)
	if len(selected) > 0 || len(profiles) == 0 || b.selection.Initialized(project.Name) {
		return selected
	}

	if b.selection.InitializeDefaults(project.Name, models.DefaultProfileIDs(profiles)) {
		b.logger.Debug("applied default profiles", slog.String("project", project.Name))
	}
	return b.selection.GetSelected(project.Name)
}

// SelectedProfiles returns the profile ids used when running the project.
func (b *Builder) SelectedProfiles(ctx context.Context, project *models.Project) []string {
	return b.selectedProfiles(project, b.metadata.Profiles(ctx, project))
}

// ActiveProfiles is SelectedProfiles restricted to the ids the project
// still declares. Stale ids stay stored but are never passed to Maven.
func (b *Builder) ActiveProfiles(ctx context.Context, project *models.Project) []string {
	profiles := b.metadata.Profiles(ctx, project)
	declared := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		declared[p.ID] = true
	}

	var active []string
	for _, id := range b.selectedProfiles(project, profiles) {
		if declared[id] {
			active = append(active, id)
		} else {
			b.logger.Debug("ignoring stale profile", slog.String("project", project.Name), slog.String("profile", id))
		}
	}
	return active
}

func (b *Builder) phaseNodes(project *models.Project) []Node {
	nodes := make([]Node, 0, len(b.phases))
	for _, phase := range b.phases {
		nodes = append(nodes, b.PhaseNode(project, phase))
	}
	return nodes
}

// PhaseNode returns the node of a phase in a project.
func (b *Builder) PhaseNode(project *models.Project, phase models.Phase) *PhaseNode {
	return &PhaseNode{project: project, phase: phase, skipTests: b.skipTests}
}

func (b *Builder) runConfigurations(ctx context.Context, project *models.Project) []models.RunConfiguration {
	if b.runConfig == nil {
		return nil
	}
	return b.runConfig.Resolve(ctx, project)
}
