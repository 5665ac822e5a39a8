package tree

import (
	"context"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/catalog"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// ProjectNode is the top-level node of a project.
type ProjectNode struct {
	b       *Builder
	project *models.Project
}

func (n *ProjectNode) Kind() Kind               { return KindProject }
func (n *ProjectNode) Key() Key                 { return Key{Kind: KindProject, Project: n.project.Name} }
func (n *ProjectNode) DisplayName() string      { return n.project.Name }
func (n *ProjectNode) Icon() Icon               { return IconProject }
func (n *ProjectNode) Project() *models.Project { return n.project }

// Children lists the phases directly when the project has no profiles,
// plugins, run configurations or dependencies. Otherwise it returns the
// groups in the order profiles, phases, plugins, run configurations,
// dependencies, leaving out empty ones (phases are always present).
func (n *ProjectNode) Children(ctx context.Context) []Node {
	profiles := n.b.metadata.Profiles(ctx, n.project)
	n.b.selectedProfiles(n.project, profiles)

	hasProfiles := len(profiles) > 0
	hasPlugins := len(n.b.metadata.Plugins(ctx, n.project)) > 0
	hasRunConfigs := len(n.b.runConfigurations(ctx, n.project)) > 0
	hasDependencies := len(n.b.metadata.Dependencies(ctx, n.project)) > 0

	if !hasProfiles && !hasPlugins && !hasRunConfigs && !hasDependencies {
		return n.b.phaseNodes(n.project)
	}

	var children []Node
	if hasProfiles {
		children = append(children, &ProfileGroupNode{b: n.b, project: n.project})
	}
	children = append(children, &PhaseGroupNode{b: n.b, project: n.project})
	if hasPlugins {
		children = append(children, &PluginGroupNode{b: n.b, project: n.project})
	}
	if hasRunConfigs {
		children = append(children, &RunConfigGroupNode{b: n.b, project: n.project})
	}
	if hasDependencies {
		children = append(children, &DependencyGroupNode{b: n.b, project: n.project})
	}
	return children
}

// ProfileGroupNode holds the project's profiles.
type ProfileGroupNode struct {
	b       *Builder
	project *models.Project
}

func (n *ProfileGroupNode) Kind() Kind               { return KindProfileGroup }
func (n *ProfileGroupNode) Key() Key                 { return Key{Kind: KindProfileGroup, Project: n.project.Name} }
func (n *ProfileGroupNode) DisplayName() string      { return "Profiles" }
func (n *ProfileGroupNode) Icon() Icon               { return IconProfiles }
func (n *ProfileGroupNode) Project() *models.Project { return n.project }

func (n *ProfileGroupNode) Children(ctx context.Context) []Node {
	profiles := n.b.metadata.Profiles(ctx, n.project)
	selected := make(map[string]bool)
	for _, id := range n.b.selectedProfiles(n.project, profiles) {
		selected[id] = true
	}

	children := make([]Node, 0, len(profiles))
	for _, p := range profiles {
		children = append(children, &ProfileNode{project: n.project, profile: p, selected: selected[p.ID]})
	}
	return children
}

// ProfileNode is a profile with its selection flag at composition time.
type ProfileNode struct {
	project  *models.Project
	profile  models.Profile
	selected bool
}

func (n *ProfileNode) Kind() Kind { return KindProfile }
func (n *ProfileNode) Key() Key {
	return Key{Kind: KindProfile, Project: n.project.Name, A: n.profile.ID}
}
func (n *ProfileNode) DisplayName() string      { return n.profile.ID }
func (n *ProfileNode) Project() *models.Project { return n.project }
func (n *ProfileNode) Profile() models.Profile  { return n.profile }
func (n *ProfileNode) Selected() bool           { return n.selected }

func (n *ProfileNode) Icon() Icon {
	if n.selected {
		return IconProfileChecked
	}
	return IconProfileUnchecked
}

func (n *ProfileNode) Detail() string {
	if n.profile.ActiveByDefault {
		return "active by default"
	}
	return ""
}

// PhaseGroupNode holds the displayed lifecycle phases.
type PhaseGroupNode struct {
	b       *Builder
	project *models.Project
}

func (n *PhaseGroupNode) Kind() Kind               { return KindPhaseGroup }
func (n *PhaseGroupNode) Key() Key                 { return Key{Kind: KindPhaseGroup, Project: n.project.Name} }
func (n *PhaseGroupNode) DisplayName() string      { return "Phases" }
func (n *PhaseGroupNode) Icon() Icon               { return IconPhases }
func (n *PhaseGroupNode) Project() *models.Project { return n.project }

func (n *PhaseGroupNode) Children(context.Context) []Node {
	return n.b.phaseNodes(n.project)
}

// PhaseNode is a runnable lifecycle phase.
type PhaseNode struct {
	project   *models.Project
	phase     models.Phase
	skipTests bool
}

func (n *PhaseNode) Kind() Kind { return KindPhase }
func (n *PhaseNode) Key() Key {
	return Key{Kind: KindPhase, Project: n.project.Name, A: string(n.phase)}
}
func (n *PhaseNode) DisplayName() string      { return n.phase.DisplayName() }
func (n *PhaseNode) Project() *models.Project { return n.project }
func (n *PhaseNode) Phase() models.Phase      { return n.phase }

func (n *PhaseNode) Icon() Icon {
	switch {
	case n.phase == models.PhaseClean:
		return IconPhaseClean
	case n.phase == models.PhaseSite, n.phase == models.PhaseSiteDeploy:
		return IconPhaseSite
	case n.phase == models.PhaseTest && n.skipTests:
		return IconPhaseTestSkipped
	default:
		return IconPhase
	}
}

// PluginGroupNode holds the project's build plugins.
type PluginGroupNode struct {
	b       *Builder
	project *models.Project
}

func (n *PluginGroupNode) Kind() Kind               { return KindPluginGroup }
func (n *PluginGroupNode) Key() Key                 { return Key{Kind: KindPluginGroup, Project: n.project.Name} }
func (n *PluginGroupNode) DisplayName() string      { return "Plugins" }
func (n *PluginGroupNode) Icon() Icon               { return IconPlugins }
func (n *PluginGroupNode) Project() *models.Project { return n.project }

func (n *PluginGroupNode) Children(ctx context.Context) []Node {
	plugins := n.b.metadata.Plugins(ctx, n.project)
	children := make([]Node, 0, len(plugins))
	for _, p := range plugins {
		children = append(children, &PluginNode{project: n.project, plugin: p})
	}
	return children
}

// PluginNode is a build plugin; its children are the catalogued goals.
type PluginNode struct {
	project *models.Project
	plugin  models.Plugin
}

func (n *PluginNode) Kind() Kind { return KindPlugin }
func (n *PluginNode) Key() Key {
	return Key{Kind: KindPlugin, Project: n.project.Name, A: n.plugin.GroupID, B: n.plugin.ArtifactID}
}
func (n *PluginNode) DisplayName() string      { return n.plugin.GoalPrefix() }
func (n *PluginNode) Detail() string           { return n.plugin.Coordinates() }
func (n *PluginNode) Icon() Icon               { return IconPlugin }
func (n *PluginNode) Project() *models.Project { return n.project }
func (n *PluginNode) Plugin() models.Plugin    { return n.plugin }

func (n *PluginNode) Children(context.Context) []Node {
	goals := catalog.Goals(n.plugin.ArtifactID)
	children := make([]Node, 0, len(goals))
	for _, g := range goals {
		children = append(children, n.Goal(g))
	}
	return children
}

// Goal returns the goal node of this plugin.
func (n *PluginNode) Goal(goal string) *PluginGoalNode {
	return &PluginGoalNode{project: n.project, goal: models.PluginGoal{Plugin: n.plugin, Goal: goal}}
}

// PluginGoalNode is a single runnable plugin goal.
type PluginGoalNode struct {
	project *models.Project
	goal    models.PluginGoal
}

func (n *PluginGoalNode) Kind() Kind { return KindPluginGoal }
func (n *PluginGoalNode) Key() Key {
	return Key{
		Kind:    KindPluginGoal,
		Project: n.project.Name,
		A:       n.goal.Plugin.GroupID,
		B:       n.goal.Plugin.ArtifactID,
		C:       n.goal.Goal,
	}
}
func (n *PluginGoalNode) DisplayName() string      { return n.goal.Command() }
func (n *PluginGoalNode) Icon() Icon               { return IconPluginGoal }
func (n *PluginGoalNode) Project() *models.Project { return n.project }
func (n *PluginGoalNode) Goal() models.PluginGoal  { return n.goal }

// Command is the "prefix:goal" argument passed to Maven.
func (n *PluginGoalNode) Command() string { return n.goal.Command() }

// RunConfigGroupNode holds the project's saved run configurations.
type RunConfigGroupNode struct {
	b       *Builder
	project *models.Project
}

func (n *RunConfigGroupNode) Kind() Kind { return KindRunConfigGroup }
func (n *RunConfigGroupNode) Key() Key {
	return Key{Kind: KindRunConfigGroup, Project: n.project.Name}
}
func (n *RunConfigGroupNode) DisplayName() string      { return "Run Configurations" }
func (n *RunConfigGroupNode) Icon() Icon               { return IconRunConfigs }
func (n *RunConfigGroupNode) Project() *models.Project { return n.project }

func (n *RunConfigGroupNode) Children(ctx context.Context) []Node {
	configs := n.b.runConfigurations(ctx, n.project)
	children := make([]Node, 0, len(configs))
	for _, cfg := range configs {
		children = append(children, &RunConfigNode{project: n.project, config: cfg})
	}
	return children
}

// RunConfigNode is a saved run configuration.
type RunConfigNode struct {
	project *models.Project
	config  models.RunConfiguration
}

func (n *RunConfigNode) Kind() Kind { return KindRunConfig }
func (n *RunConfigNode) Key() Key {
	return Key{Kind: KindRunConfig, Project: n.project.Name, A: n.config.Name}
}
func (n *RunConfigNode) DisplayName() string             { return n.config.Name }
func (n *RunConfigNode) Icon() Icon                      { return IconRunConfig }
func (n *RunConfigNode) Project() *models.Project        { return n.project }
func (n *RunConfigNode) Config() models.RunConfiguration { return n.config }

func (n *RunConfigNode) Detail() string {
	return strings.Join(n.config.Goals, " ")
}

// DependencyGroupNode holds the project's declared dependencies.
type DependencyGroupNode struct {
	b       *Builder
	project *models.Project
}

func (n *DependencyGroupNode) Kind() Kind { return KindDependencyGroup }
func (n *DependencyGroupNode) Key() Key {
	return Key{Kind: KindDependencyGroup, Project: n.project.Name}
}
func (n *DependencyGroupNode) DisplayName() string      { return "Dependencies" }
func (n *DependencyGroupNode) Icon() Icon               { return IconDependencies }
func (n *DependencyGroupNode) Project() *models.Project { return n.project }

func (n *DependencyGroupNode) Children(ctx context.Context) []Node {
	deps := n.b.metadata.Dependencies(ctx, n.project)
	children := make([]Node, 0, len(deps))
	for _, d := range deps {
		children = append(children, &DependencyNode{project: n.project, dependency: d})
	}
	return children
}

// DependencyNode is a declared dependency.
type DependencyNode struct {
	project    *models.Project
	dependency models.Dependency
}

func (n *DependencyNode) Kind() Kind { return KindDependency }
func (n *DependencyNode) Key() Key {
	return Key{
		Kind:    KindDependency,
		Project: n.project.Name,
		A:       n.dependency.Coordinates(),
		B:       n.dependency.ScopeName(),
	}
}
func (n *DependencyNode) DisplayName() string           { return n.dependency.Coordinates() }
func (n *DependencyNode) Detail() string                { return n.dependency.ScopeName() }
func (n *DependencyNode) Project() *models.Project      { return n.project }
func (n *DependencyNode) Dependency() models.Dependency { return n.dependency }

func (n *DependencyNode) Icon() Icon {
	if n.dependency.IsTestScope() {
		return IconDependencyTest
	}
	return IconDependency
}
