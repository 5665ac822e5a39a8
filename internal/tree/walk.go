package tree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// ErrSkipChildren is returned by a WalkFunc to skip the children of the
// current node.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is called for every visited node with its depth (roots are 0).
type WalkFunc func(n Node, depth int) error

// Walk visits nodes depth-first, parents before children.
func Walk(ctx context.Context, nodes []Node, fn WalkFunc) error {
	return walk(ctx, nodes, 0, fn)
}

func walk(ctx context.Context, nodes []Node, depth int, fn WalkFunc) error {
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(n, depth)
		if errors.Is(err, ErrSkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		if err := walk(ctx, Children(ctx, n), depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Find resolves a node by its display path, starting at one of nodes.
func Find(ctx context.Context, nodes []Node, path ...string) (Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	for _, n := range nodes {
		if n.DisplayName() != path[0] {
			continue
		}
		if len(path) == 1 {
			return n, true
		}
		return Find(ctx, Children(ctx, n), path[1:]...)
	}
	return nil, false
}

// Find resolves a node by display path from the project roots.
func (b *Builder) Find(ctx context.Context, path ...string) (Node, bool) {
	return Find(ctx, b.Roots(ctx), path...)
}

// Select resolves a runnable node from a selector:
//
//	project:phase          lifecycle phase
//	project:prefix:goal    catalogued plugin goal
//	project@name           run configuration
func (b *Builder) Select(ctx context.Context, selector string) (Node, error) {
	if name, config, ok := strings.Cut(selector, "@"); ok {
		project, err := b.lookup(name)
		if err != nil {
			return nil, err
		}
		for _, cfg := range b.runConfigurations(ctx, project) {
			if cfg.Name == config {
				return &RunConfigNode{project: project, config: cfg}, nil
			}
		}
		return nil, fmt.Errorf("project %s has no run configuration %q", project.Name, config)
	}

	parts := strings.Split(selector, ":")
	project, err := b.lookup(parts[0])
	if err != nil {
		return nil, err
	}

	switch len(parts) {
	case 2:
		phase, err := models.ParsePhase(parts[1])
		if err != nil {
			return nil, err
		}
		return b.PhaseNode(project, phase), nil
	case 3:
		return b.selectGoal(ctx, project, parts[1], parts[2])
	default:
		return nil, fmt.Errorf("invalid selector %q: expected project:phase, project:prefix:goal or project@configuration", selector)
	}
}

func (b *Builder) selectGoal(ctx context.Context, project *models.Project, prefix, goal string) (Node, error) {
	for _, plugin := range b.metadata.Plugins(ctx, project) {
		if plugin.GoalPrefix() != prefix {
			continue
		}
		node := &PluginNode{project: project, plugin: plugin}
		for _, child := range node.Children(ctx) {
			if g := child.(*PluginGoalNode); g.goal.Goal == goal {
				return g, nil
			}
		}
		return nil, fmt.Errorf("plugin %s in project %s has no goal %q", prefix, project.Name, goal)
	}
	return nil, fmt.Errorf("project %s has no plugin with prefix %q", project.Name, prefix)
}

func (b *Builder) lookup(name string) (*models.Project, error) {
	if name == "" {
		return nil, errors.New("selector has no project")
	}
	project, ok := b.Project(name)
	if !ok {
		return nil, fmt.Errorf("project not found: %s", name)
	}
	return project, nil
}
