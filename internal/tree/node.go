// Package tree composes the navigable project hierarchy: projects, their
// profiles, lifecycle phases, plugins with goals, run configurations and
// dependencies. Children are computed on every request; nodes compare by key.
package tree

import (
	"context"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// Kind identifies a node variant.
type Kind string

const (
	KindProject         Kind = "project"
	KindProfileGroup    Kind = "profiles"
	KindProfile         Kind = "profile"
	KindPhaseGroup      Kind = "phases"
	KindPhase           Kind = "phase"
	KindPluginGroup     Kind = "plugins"
	KindPlugin          Kind = "plugin"
	KindPluginGoal      Kind = "goal"
	KindRunConfigGroup  Kind = "run-configurations"
	KindRunConfig       Kind = "run-configuration"
	KindDependencyGroup Kind = "dependencies"
	KindDependency      Kind = "dependency"
)

// Icon is a symbolic icon name; rendering is up to the front end.
type Icon string

const (
	IconProject          Icon = "project"
	IconProfiles         Icon = "profiles"
	IconProfileChecked   Icon = "profile-checked"
	IconProfileUnchecked Icon = "profile-unchecked"
	IconPhases           Icon = "phases"
	IconPhase            Icon = "phase"
	IconPhaseClean       Icon = "phase-clean"
	IconPhaseSite        Icon = "phase-site"
	IconPhaseTestSkipped Icon = "phase-test-skipped"
	IconPlugins          Icon = "plugins"
	IconPlugin           Icon = "plugin"
	IconPluginGoal       Icon = "goal"
	IconRunConfigs       Icon = "settings"
	IconRunConfig        Icon = "maven"
	IconDependencies     Icon = "dependencies"
	IconDependency       Icon = "dependency"
	IconDependencyTest   Icon = "dependency-test"
)

// Key is the identity of a node: its kind, owning project and up to three
// node-specific parts. Keys are comparable and usable as map keys.
type Key struct {
	Kind    Kind
	Project string
	A, B, C string
}

// Node is implemented by every tree element.
type Node interface {
	Kind() Kind
	Key() Key
	DisplayName() string
	Icon() Icon
	Project() *models.Project
}

// Container is a node with children.
type Container interface {
	Node
	Children(ctx context.Context) []Node
}

// Describer is implemented by nodes with secondary text, such as plugin
// coordinates or a dependency scope.
type Describer interface {
	Detail() string
}

// Equal reports whether two nodes denote the same element.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// Children returns the children of n, or nil for leaves.
func Children(ctx context.Context, n Node) []Node {
	if c, ok := n.(Container); ok {
		return c.Children(ctx)
	}
	return nil
}
