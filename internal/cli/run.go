package cli

import (
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/dispatch"
	"github.com/tlcsdm/eclipse-maven-view/internal/render"
	"github.com/tlcsdm/eclipse-maven-view/internal/tree"
	"github.com/tlcsdm/eclipse-maven-view/internal/tui/components"
)

// RunCommand handles the run command
type RunCommand struct {
	rt       *runtime
	dryRun   bool
	template string
	pick     bool
}

// NewRunCommand creates a new run command
func NewRunCommand(rt *runtime) *cobra.Command {
	cmd := &RunCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "run [selector...]",
		Short: "Run lifecycle phases, plugin goals or run configurations",
		Long: `Runs the selected tree items with Maven.

Selectors:
  project:phase          a lifecycle phase, e.g. core:install
  project:prefix:goal    a plugin goal, e.g. core:compiler:compile
  project@name           a saved run configuration

Phases of the same project run in a single invocation in lifecycle order;
every goal and run configuration runs on its own. A failing invocation does
not stop the others. The selected profiles of each project are passed with
-P, and -DskipTests is added to phase invocations when tests are skipped.`,
		Example: `  # Clean and install two projects
  mavenview run core:install core:clean web:package

  # Show what would run
  mavenview run core:install --dry-run

  # Choose interactively
  mavenview run --pick`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.dryRun, "dry-run", false, "Print the planned invocations without running them")
	cobraCmd.Flags().StringVar(&cmd.template, "template", "", "Template file used to render --dry-run output")
	cobraCmd.Flags().BoolVar(&cmd.pick, "pick", false, "Pick phases, goals and run configurations interactively")

	return cobraCmd
}

// Run executes the run command
func (c *RunCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}

	var nodes []tree.Node
	if c.pick {
		nodes, err = c.pickNodes(ctx, a, args)
		if err != nil {
			return err
		}
		if nodes == nil {
			_, _ = fmt.Fprintln(c.rt.stdout(), "Cancelled; nothing was run")
			return nil
		}
	} else {
		for _, selector := range args {
			n, err := a.builder.Select(ctx, selector)
			if err != nil {
				return err
			}
			nodes = append(nodes, n)
		}
	}

	if len(nodes) == 0 {
		return dispatch.ErrNothingSelected
	}

	// Apply default profiles the way showing the tree would.
	seen := make(map[string]bool)
	for _, n := range nodes {
		if p := n.Project(); p != nil && !seen[p.Name] {
			seen[p.Name] = true
			a.builder.SelectedProfiles(ctx, p)
		}
	}

	w := c.rt.stdout()
	d := a.dispatcher(w)

	if c.dryRun {
		units, err := d.Plan(ctx, nodes)
		if err != nil {
			return err
		}
		tmpl, err := c.planTemplate(a)
		if err != nil {
			return err
		}
		out, err := render.ExecuteTemplate(tmpl, render.NewPlanData(units, a.settings))
		if err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
		_, _ = fmt.Fprint(w, out)
		return nil
	}

	report, err := d.Dispatch(ctx, nodes)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", report.Summary())
	if len(report.Failed()) > 0 {
		return errors.New("some invocations failed")
	}
	return nil
}

func (c *RunCommand) planTemplate(a *app) (*template.Template, error) {
	if c.template == "" {
		return render.New("plan", render.DefaultPlanTemplate)
	}
	return render.ParseTemplateFile(a.fs, c.template)
}

// pickNodes offers the runnable nodes of the given (or all displayed)
// projects. A nil result means the user cancelled.
func (c *RunCommand) pickNodes(ctx context.Context, a *app, projects []string) ([]tree.Node, error) {
	roots := a.builder.Roots(ctx)
	if len(projects) > 0 {
		roots = roots[:0]
		for _, name := range projects {
			project, err := a.project(name)
			if err != nil {
				return nil, err
			}
			roots = append(roots, a.builder.ProjectNode(project))
		}
	}

	items, nodes := runnableItems(ctx, roots)
	if len(nodes) == 0 {
		return nil, dispatch.ErrNothingSelected
	}

	selected, ok, err := c.rt.deps.Picker("Select what to run", items)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	picked := []tree.Node{}
	for _, i := range selected {
		if n := nodes[i]; n != nil {
			picked = append(picked, n)
		}
	}
	return picked, nil
}

// runnableItems flattens phases, goals and run configurations below roots
// into picker rows. nodes[i] is the node of items[i], nil for headers.
func runnableItems(ctx context.Context, roots []tree.Node) ([]components.Item, []tree.Node) {
	var (
		items    []components.Item
		nodes    []tree.Node
		runnable int
	)

	_ = tree.Walk(ctx, roots, func(n tree.Node, depth int) error {
		switch n := n.(type) {
		case *tree.ProjectNode:
			items = append(items, components.Item{Label: n.DisplayName(), Header: true})
			nodes = append(nodes, nil)
		case *tree.ProfileGroupNode, *tree.DependencyGroupNode:
			return tree.ErrSkipChildren
		case *tree.PhaseNode:
			items = append(items, components.Item{Label: n.DisplayName()})
			nodes = append(nodes, n)
			runnable++
		case *tree.PluginGoalNode:
			items = append(items, components.Item{Label: n.DisplayName(), Detail: "goal"})
			nodes = append(nodes, n)
			runnable++
		case *tree.RunConfigNode:
			items = append(items, components.Item{Label: n.DisplayName(), Detail: "run configuration"})
			nodes = append(nodes, n)
			runnable++
		}
		return nil
	})

	if runnable == 0 {
		return nil, nil
	}
	return items, nodes
}
